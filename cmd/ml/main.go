package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

// version is set at build time.
var version = "dev"

const description = `Type a link's shortcut on the start page to open it. Multi-key
shortcuts such as "g h" wait up to a second for the next key.

Start page keys:
  /           Find links
  ctrl+e      Edit mode
  ctrl+t      Toggle shortcut hints
  ctrl+r      Reload links from disk
  ?           Show help overlay
  ctrl+c      Quit

Edit mode:
  j/k         Move down/up
  h/l         Previous/next widget
  gg/G        Jump to top/bottom
  J/K         Move link down/up
  a           Add link to the current widget
  e           Edit label, URL, favicon and shortcuts
  r           Rename the current widget
  A           Add widget to the current column
  d           Delete link
  Y           Copy URL to clipboard
  o/Enter     Open link
  Esc         Back to the start page

In the forms Tab moves between fields, Enter saves and Esc cancels.
Several shortcuts for one link are separated by commas: "g h, ctrl+g".

System shortcuts can be rebound in ~/.config/mylinks/config.yaml.`

func main() {
	cmd := &cli.Command{
		Name:        "ml",
		Usage:       "keyboard driven start page for your links",
		Description: description,
		Version:     version,
		Action:      runTUI,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "~/.config/mylinks/config.yaml",
				Sources:     cli.EnvVars("MYLINKS_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "find",
				Usage:     "Search links, pick one and open it",
				ArgsUsage: "<query>",
				Action:    runFind,
			},
			{
				Name:      "open",
				Usage:     "Open the link(s) bound to a key combination",
				ArgsUsage: "<combination>",
				Action:    runOpen,
			},
			{
				Name:   "check",
				Usage:  "Report duplicate ids, malformed shortcuts and unknown multi-open links",
				Action: runCheck,
			},
			{
				Name:      "import",
				Usage:     "Import links from a Netscape bookmark HTML file",
				ArgsUsage: "<file.html>",
				Action:    runImport,
			},
			{
				Name:      "export",
				Usage:     "Export links to a Netscape bookmark HTML file",
				ArgsUsage: "[path]",
				Action:    runExport,
			},
			{
				Name:   "cull",
				Usage:  "Find links whose pages are gone",
				Action: runCull,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "delete",
						Usage: "Remove dead links from the document",
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the links and shortcut resolution over HTTP",
				Action: runServe,
			},
			{
				Name:   "mcp",
				Usage:  "Serve link tools to MCP clients over stdio",
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
