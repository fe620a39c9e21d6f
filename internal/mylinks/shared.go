package mylinks

import (
	"sync"

	"github.com/nikbrunner/mylinks/internal/model"
)

// Shared guards a Holder with a mutex for servers that answer requests from
// several goroutines.
type Shared struct {
	mu     sync.Mutex
	holder *Holder
}

// NewShared wraps h.
func NewShared(h *Holder) *Shared {
	return &Shared{holder: h}
}

// Do runs fn with exclusive access to the holder. Values derived from the
// document must not escape fn unless copied.
func (s *Shared) Do(fn func(h *Holder)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.holder)
}

// Replace swaps in a new document.
func (s *Shared) Replace(doc *model.Document) {
	s.Do(func(h *Holder) { h.Replace(doc) })
}
