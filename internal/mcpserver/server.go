// Package mcpserver provides an MCP (Model Context Protocol) server that lets
// LLM clients search links and resolve shortcuts via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nikbrunner/mylinks/internal/mylinks"
	"github.com/nikbrunner/mylinks/internal/search"
)

// maxResults caps search_links output.
const maxResults = 20

// Server wraps the MCP server with the link tools.
type Server struct {
	mcp    *server.MCPServer
	shared *mylinks.Shared
	mode   search.Mode
}

// New creates a new MCP server with all tools registered.
func New(shared *mylinks.Shared, mode search.Mode, version string) *Server {
	s := &Server{shared: shared, mode: mode}

	s.mcp = server.NewMCPServer(
		"mylinks",
		version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("search_links",
		mcp.WithDescription("Search the start page links by label and URL. Label matches come first."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
	), s.searchLinks)

	s.mcp.AddTool(mcp.NewTool("resolve_shortcut",
		mcp.WithDescription("Resolve a key combination such as \"g h\" or \"ctrl+k\". "+
			"Returns every shortcut the combination is a prefix of, from the highest priority tier only: "+
			"system shortcuts, then multi-open shortcuts, then single link shortcuts."),
		mcp.WithString("pattern", mcp.Required(), mcp.Description("Space separated key combination")),
	), s.resolveShortcut)

	s.mcp.AddTool(mcp.NewTool("get_link",
		mcp.WithDescription("Get a link and its widget by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Link id")),
	), s.getLink)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var links []mylinks.LinkView
	s.shared.Do(func(h *mylinks.Holder) {
		searcher := search.NewSearcher(s.mode)
		searcher.SetLinks(h.Links())
		for _, r := range searcher.Filter(query) {
			if len(links) == maxResults {
				break
			}
			links = append(links, h.ViewLink(r.Link))
		}
	})
	if len(links) == 0 {
		return mcp.NewToolResultText("no links found"), nil
	}
	return jsonResult(links)
}

func (s *Server) resolveShortcut(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var views []mylinks.ShortcutView
	s.shared.Do(func(h *mylinks.Holder) {
		views = h.ResolveViews(pattern)
	})
	if len(views) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no shortcut matches %q", pattern)), nil
	}
	return jsonResult(views)
}

func (s *Server) getLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var (
		view  mylinks.LinkView
		found bool
	)
	s.shared.Do(func(h *mylinks.Holder) {
		if e, ok := h.Find(id); ok {
			view, found = h.ViewLink(e.Link), true
		}
	})
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return jsonResult(view)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
