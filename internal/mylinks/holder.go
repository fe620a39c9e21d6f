// Package mylinks owns the current document and answers lookups, shortcut
// resolution and link listings against it.
//
// A Holder is not safe for concurrent use. Callers that share one across
// goroutines serialise access themselves.
package mylinks

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nikbrunner/mylinks/internal/keycombo"
	"github.com/nikbrunner/mylinks/internal/linkindex"
	"github.com/nikbrunner/mylinks/internal/model"
	"github.com/nikbrunner/mylinks/internal/shortcut"
)

// ErrUnknownLinkID is reported by Check for multi-open entries that reference
// links that do not exist.
var ErrUnknownLinkID = errors.New("unknown link id")

// Holder pairs a document with a version counter. The link index is cached for
// the version it was built from and rebuilt whenever the version moves on.
type Holder struct {
	doc      *model.Document
	version  uint64
	registry *shortcut.Registry
	logger   *slog.Logger

	index        *linkindex.Index
	indexErr     error
	indexVersion uint64
	indexBuilt   bool
}

// New creates a Holder. registry may be nil when no system shortcuts exist.
func New(doc *model.Document, registry *shortcut.Registry, logger *slog.Logger) *Holder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Holder{
		doc:      doc,
		version:  1,
		registry: registry,
		logger:   logger,
	}
}

// Document returns the current document. It may be nil.
func (h *Holder) Document() *model.Document {
	return h.doc
}

// Registry returns the system shortcut registry.
func (h *Holder) Registry() *shortcut.Registry {
	return h.registry
}

// Version returns the current document version.
func (h *Holder) Version() uint64 {
	return h.version
}

// Replace swaps in a new document.
func (h *Holder) Replace(doc *model.Document) {
	h.doc = doc
	h.version++
}

// Edit runs fn against the current document. The version is bumped even when
// fn fails, since fn may have changed the document before failing.
func (h *Holder) Edit(fn func(doc *model.Document) error) error {
	if h.doc == nil {
		h.doc = model.NewDocument()
	}
	defer func() { h.version++ }()
	return fn(h.doc)
}

// Index returns the link index for the current version, building it if needed.
func (h *Holder) Index() (*linkindex.Index, error) {
	if h.indexBuilt && h.indexVersion == h.version {
		return h.index, h.indexErr
	}

	var columns [][]model.Widget
	if h.doc != nil {
		columns = h.doc.Columns
	}
	h.index, h.indexErr = linkindex.Build(columns)
	h.indexVersion = h.version
	h.indexBuilt = true

	if h.indexErr != nil {
		h.logger.Error("failed to build link index", "version", h.version, "error", h.indexErr)
	}
	return h.index, h.indexErr
}

// Find returns the link with the given id and its widget.
func (h *Holder) Find(id string) (linkindex.Entry, bool) {
	idx, err := h.Index()
	if err != nil {
		return linkindex.Entry{}, false
	}
	return idx.Find(id)
}

// FindWidgetByLinkID returns the widget holding the link, or nil.
func (h *Holder) FindWidgetByLinkID(id string) *model.Widget {
	e, ok := h.Find(id)
	if !ok {
		return nil
	}
	return e.Widget
}

// FindWidgetByID returns the widget with the given id, or nil.
func (h *Holder) FindWidgetByID(id string) *model.Widget {
	if h.doc == nil {
		return nil
	}
	return h.doc.FindWidgetByID(id)
}

// Links returns every link in document order.
func (h *Holder) Links() []*model.Link {
	return h.doc.FilterLinks(func(*model.Widget, *model.Link) bool { return true })
}

// HasShortcuts reports whether any link has a combination bound to it.
func (h *Holder) HasShortcuts() bool {
	return h.doc.SomeLink(func(_ *model.Widget, l *model.Link) bool { return l.HasShortcut() })
}

// Resolve returns the shortcuts matching pattern. System shortcuts win over
// multi-open shortcuts, which win over single link shortcuts; the first tier
// with a match is returned alone. An empty result is a normal outcome.
func (h *Holder) Resolve(pattern string) []shortcut.Shortcut {
	if keycombo.Canonical(pattern) == "" {
		return nil
	}

	if h.registry != nil {
		if found := h.registry.FindByPrefix(pattern); len(found) > 0 {
			return found
		}
	}

	if h.doc == nil {
		return nil
	}
	idx, err := h.Index()
	if err != nil {
		return nil
	}

	if found := h.resolveMultiOpen(pattern, idx); len(found) > 0 {
		return found
	}
	return resolveLinks(pattern, idx)
}

func (h *Holder) resolveMultiOpen(pattern string, idx *linkindex.Index) []shortcut.Shortcut {
	if h.doc.MultiOpen == nil {
		return nil
	}

	var result []shortcut.Shortcut
	for _, entry := range h.doc.MultiOpen.Shortcuts {
		if !keycombo.StartsWith(pattern, entry.Shortcut) {
			continue
		}
		links := make([]*model.Link, 0, len(entry.LinkIDs))
		for _, id := range entry.LinkIDs {
			e, ok := idx.Find(id)
			if !ok {
				h.logger.Warn("multi-open shortcut references unknown link", "shortcut", entry.Shortcut, "link_id", id)
				continue
			}
			links = append(links, e.Link)
		}
		if len(links) == 0 {
			continue
		}
		result = append(result, shortcut.LinkArray{Combination: entry.Shortcut, Links: links})
	}
	return result
}

func resolveLinks(pattern string, idx *linkindex.Index) []shortcut.Shortcut {
	var result []shortcut.Shortcut
	for _, e := range idx.Entries() {
		combo, ok := e.Link.Shortcuts.Matching(pattern)
		if !ok {
			continue
		}
		result = append(result, shortcut.LinkShortcut{Combination: combo, Link: e.Link, Widget: e.Widget})
	}
	return result
}

// Check validates the document: link ids must be unique, bound combinations
// must parse and multi-open entries must reference existing links.
// All problems are joined into one error.
func (h *Holder) Check() error {
	var errs []error

	idx, err := h.Index()
	if err != nil {
		errs = append(errs, err)
	}

	h.doc.Walk(func(w *model.Widget, l *model.Link) bool {
		for _, combo := range l.Shortcuts {
			if !keycombo.IsCombination(combo) {
				errs = append(errs, fmt.Errorf("link %q in widget %q: %w: %q", l.ID, w.Title, model.ErrInvalidShortcut, combo))
			}
		}
		return true
	})

	if h.doc != nil && h.doc.MultiOpen != nil {
		for _, entry := range h.doc.MultiOpen.Shortcuts {
			if !keycombo.IsCombination(entry.Shortcut) {
				errs = append(errs, fmt.Errorf("multi-open: %w: %q", model.ErrInvalidShortcut, entry.Shortcut))
			}
			if idx == nil {
				continue
			}
			for _, id := range entry.LinkIDs {
				if _, ok := idx.Find(id); !ok {
					errs = append(errs, fmt.Errorf("multi-open %q: %w: %s", entry.Shortcut, ErrUnknownLinkID, id))
				}
			}
		}
	}

	return errors.Join(errs...)
}
