// Package api serves the start page document and shortcut resolution over
// HTTP for a browser front end.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nikbrunner/mylinks/internal/mylinks"
	"github.com/nikbrunner/mylinks/internal/search"
)

// NewRouter creates a chi router with all routes mounted. Routes under /api
// require the bearer token when token is not empty.
func NewRouter(shared *mylinks.Shared, mode search.Mode, token string, logger *slog.Logger) chi.Router {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := NewHandler(shared, mode)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware(token))

		r.Get("/document", h.Document)
		r.Get("/links/{id}", h.GetLink)
		r.Get("/shortcuts", h.ResolveShortcuts)
		r.Get("/shortcuts/any", h.HasShortcuts)
		r.Get("/search", h.Search)
	})

	return r
}
