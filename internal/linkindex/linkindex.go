// Package linkindex maps link ids to the link and the widget that holds it.
//
// An Index is a read-only snapshot of a document. It is never patched: when the
// document changes, build a new one.
package linkindex

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nikbrunner/mylinks/internal/model"
)

// Entry locates one link inside a document.
type Entry struct {
	Link     *model.Link
	Widget   *model.Widget
	Column   int
	Position int
}

// Collision records a link id that occurs more than once. WidgetIDs lists each
// widget holding the id once, in document order.
type Collision struct {
	ID        string
	WidgetIDs []string
}

// DuplicateIDError is returned by Build when link ids are not unique.
type DuplicateIDError struct {
	Collisions []Collision
}

func (e *DuplicateIDError) Error() string {
	parts := make([]string, 0, len(e.Collisions))
	for _, c := range e.Collisions {
		parts = append(parts, fmt.Sprintf("%q (widgets %s)", c.ID, strings.Join(c.WidgetIDs, ", ")))
	}
	return "duplicate link ids: " + strings.Join(parts, "; ")
}

// Index is an O(1) lookup from link id to Entry.
type Index struct {
	byID  map[string]Entry
	order []Entry
}

// Build walks the columns in document order and indexes every link.
// Pointers in the returned entries point into columns.
func Build(columns [][]model.Widget) (*Index, error) {
	idx := &Index{byID: make(map[string]Entry)}
	holders := make(map[string][]string)
	seen := make(map[string]int)

	for c := range columns {
		for w := range columns[c] {
			widget := &columns[c][w]
			for p := range widget.List {
				link := &widget.List[p]
				seen[link.ID]++
				if ws := holders[link.ID]; len(ws) == 0 || ws[len(ws)-1] != widget.ID {
					holders[link.ID] = append(ws, widget.ID)
				}
				if _, exists := idx.byID[link.ID]; exists {
					continue
				}
				e := Entry{Link: link, Widget: widget, Column: c, Position: p}
				idx.byID[link.ID] = e
				idx.order = append(idx.order, e)
			}
		}
	}

	var collisions []Collision
	for id, widgets := range holders {
		if seen[id] > 1 {
			collisions = append(collisions, Collision{ID: id, WidgetIDs: widgets})
		}
	}
	if len(collisions) > 0 {
		sort.Slice(collisions, func(i, j int) bool { return collisions[i].ID < collisions[j].ID })
		return nil, &DuplicateIDError{Collisions: collisions}
	}
	return idx, nil
}

// Find returns the entry for id.
func (idx *Index) Find(id string) (Entry, bool) {
	if idx == nil {
		return Entry{}, false
	}
	e, ok := idx.byID[id]
	return e, ok
}

// Entries returns all entries in document order.
func (idx *Index) Entries() []Entry {
	if idx == nil {
		return nil
	}
	return idx.order
}

// Len returns the number of indexed links.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.order)
}
