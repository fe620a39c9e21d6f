package shortcut

import (
	"log/slog"
	"sync"

	"github.com/nikbrunner/mylinks/internal/keycombo"
)

// Registry holds system shortcuts in registration order.
// It starts empty; callers register their own actions.
type Registry struct {
	mu      sync.RWMutex
	entries []System
	logger  *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger discards warnings.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{logger: logger}
}

// Register adds s. It returns false and logs a warning when the combination is
// malformed or already registered.
func (r *Registry) Register(s System) bool {
	canonical := keycombo.Canonical(s.Combination)
	if canonical == "" {
		r.logger.Warn("ignoring malformed system shortcut", "combination", s.Combination, "action", s.Action)
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if keycombo.Compare(e.Combination, canonical) {
			r.logger.Warn("system shortcut already registered",
				"combination", canonical, "action", s.Action, "registered_action", e.Action)
			return false
		}
	}
	s.Combination = canonical
	r.entries = append(r.entries, s)
	return true
}

// FindByPrefix returns every system shortcut whose combination starts with
// pattern, in registration order.
func (r *Registry) FindByPrefix(pattern string) []Shortcut {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Shortcut
	for _, e := range r.entries {
		if keycombo.StartsWith(pattern, e.Combination) {
			result = append(result, e)
		}
	}
	return result
}

// All returns a copy of the registered shortcuts.
func (r *Registry) All() []System {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]System(nil), r.entries...)
}

// Len returns the number of registered shortcuts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Clear removes every entry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
