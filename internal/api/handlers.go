package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nikbrunner/mylinks/internal/mylinks"
	"github.com/nikbrunner/mylinks/internal/search"
)

// Handler holds API route handlers.
type Handler struct {
	shared *mylinks.Shared
	mode   search.Mode
}

// NewHandler creates a new Handler.
func NewHandler(shared *mylinks.Shared, mode search.Mode) *Handler {
	return &Handler{shared: shared, mode: mode}
}

// SearchHit is a single search result.
type SearchHit struct {
	Link       mylinks.LinkView `json:"link"`
	Field      search.Field     `json:"field"`
	LabelSpans []search.Span    `json:"labelSpans,omitempty"`
	URLSpans   []search.Span    `json:"urlSpans,omitempty"`
	Score      int              `json:"score"`
}

// Document handles GET /api/document.
func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	var (
		data []byte
		err  error
	)
	// Encode under the lock; the document may be replaced right after.
	h.shared.Do(func(holder *mylinks.Holder) {
		data, err = json.Marshal(holder.Document())
	})
	if err != nil {
		slog.Error("encode document failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, json.RawMessage(data))
}

// GetLink handles GET /api/links/{id}.
func (h *Handler) GetLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var (
		view  mylinks.LinkView
		found bool
	)
	h.shared.Do(func(holder *mylinks.Holder) {
		e, ok := holder.Find(id)
		if !ok {
			return
		}
		view, found = holder.ViewLink(e.Link), true
	})
	if !found {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ResolveShortcuts handles GET /api/shortcuts?pattern=.
func (h *Handler) ResolveShortcuts(w http.ResponseWriter, r *http.Request) {
	pattern := strings.TrimSpace(r.URL.Query().Get("pattern"))
	if pattern == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("pattern is required"))
		return
	}

	var views []mylinks.ShortcutView
	h.shared.Do(func(holder *mylinks.Holder) {
		views = holder.ResolveViews(pattern)
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"pattern":   pattern,
		"shortcuts": views,
	})
}

// HasShortcuts handles GET /api/shortcuts/any.
func (h *Handler) HasShortcuts(w http.ResponseWriter, r *http.Request) {
	var has bool
	h.shared.Do(func(holder *mylinks.Holder) {
		has = holder.HasShortcuts()
	})
	writeJSON(w, http.StatusOK, map[string]bool{"any": has})
}

// Search handles GET /api/search?q=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	hits := []SearchHit{}
	h.shared.Do(func(holder *mylinks.Holder) {
		s := search.NewSearcher(h.mode)
		s.SetLinks(holder.Links())
		for _, res := range s.Filter(q) {
			hits = append(hits, SearchHit{
				Link:       holder.ViewLink(res.Link),
				Field:      res.Field,
				LabelSpans: res.LabelSpans,
				URLSpans:   res.URLSpans,
				Score:      res.Score,
			})
		}
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   q,
		"results": hits,
	})
}
