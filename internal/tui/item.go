package tui

import "github.com/nikbrunner/mylinks/internal/model"

// Item is a link at its place in the grid.
type Item struct {
	Column int
	Widget *model.Widget
	Index  int // position in Widget.List
}

// Link returns the link the item points at.
func (i Item) Link() *model.Link {
	return &i.Widget.List[i.Index]
}

// ID returns the link's ID.
func (i Item) ID() string {
	return i.Link().ID
}

// collectItems lists every link of doc in column, widget, link order.
func collectItems(doc *model.Document) []Item {
	if doc == nil {
		return nil
	}
	var items []Item
	for c := range doc.Columns {
		for w := range doc.Columns[c] {
			widget := &doc.Columns[c][w]
			for i := range widget.List {
				items = append(items, Item{Column: c, Widget: widget, Index: i})
			}
		}
	}
	return items
}
