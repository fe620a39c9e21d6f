package model

import (
	"errors"
	"fmt"
	"slices"

	"github.com/nikbrunner/mylinks/internal/keycombo"
)

var (
	ErrWidgetNotFound  = errors.New("widget not found")
	ErrLinkNotFound    = errors.New("link not found")
	ErrInvalidPosition = errors.New("invalid position")
)

// LinkEdit describes a change to a link. Nil fields are left untouched.
// A non-nil empty Shortcuts slice removes every bound combination.
type LinkEdit struct {
	Label     *string
	URL       *string
	Favicon   *string
	Shortcuts []string
}

// AddWidget appends a new widget to the given column, creating the column if
// column equals the current column count.
func (d *Document) AddWidget(column int, title string) (*Widget, error) {
	if column < 0 || column > len(d.Columns) {
		return nil, fmt.Errorf("%w: column %d", ErrInvalidPosition, column)
	}
	if column == len(d.Columns) {
		d.Columns = append(d.Columns, []Widget{})
	}
	d.Columns[column] = append(d.Columns[column], Widget{
		ID:    NewID(),
		Title: title,
		List:  []Link{},
	})
	return &d.Columns[column][len(d.Columns[column])-1], nil
}

// RenameWidget changes the title of a widget.
func (d *Document) RenameWidget(widgetID, title string) error {
	w := d.FindWidgetByID(widgetID)
	if w == nil {
		return fmt.Errorf("%w: %s", ErrWidgetNotFound, widgetID)
	}
	w.Title = title
	return nil
}

// AddLink appends link to the widget. A missing ID is generated.
func (d *Document) AddLink(widgetID string, link Link) (*Link, error) {
	w := d.FindWidgetByID(widgetID)
	if w == nil {
		return nil, fmt.Errorf("%w: %s", ErrWidgetNotFound, widgetID)
	}
	if !keycombo.IsCombinationList([]string(link.Shortcuts)) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShortcut, link.Shortcuts)
	}
	if link.ID == "" {
		link.ID = NewID()
	}
	w.List = append(w.List, link)
	return &w.List[len(w.List)-1], nil
}

// UpdateLink applies edit to the link with the given ID.
// It reports whether anything changed.
func (d *Document) UpdateLink(id string, edit LinkEdit) (bool, error) {
	l := d.findLink(id)
	if l == nil {
		return false, fmt.Errorf("%w: %s", ErrLinkNotFound, id)
	}

	if edit.Shortcuts != nil && !keycombo.IsCombinationList(edit.Shortcuts) {
		return false, fmt.Errorf("%w: %v", ErrInvalidShortcut, edit.Shortcuts)
	}

	modified := false
	if edit.Label != nil && *edit.Label != l.Label {
		l.Label = *edit.Label
		modified = true
	}
	if edit.URL != nil && *edit.URL != l.URL {
		l.URL = *edit.URL
		modified = true
	}
	if edit.Favicon != nil && *edit.Favicon != l.Favicon {
		l.Favicon = *edit.Favicon
		modified = true
	}
	if edit.Shortcuts != nil {
		switch {
		case len(edit.Shortcuts) == 0:
			if l.HasShortcut() {
				l.Shortcuts = nil
				modified = true
			}
		case !keycombo.CompareLists(edit.Shortcuts, l.Shortcuts):
			l.Shortcuts = slices.Clone(Combinations(edit.Shortcuts))
			modified = true
		}
	}
	return modified, nil
}

// DeleteLink removes the link with the given ID. It reports whether a link was removed.
func (d *Document) DeleteLink(id string) bool {
	for _, w := range d.Widgets() {
		idx := slices.IndexFunc(w.List, func(l Link) bool { return l.ID == id })
		if idx >= 0 {
			w.List = slices.Delete(w.List, idx, idx+1)
			return true
		}
	}
	return false
}

// MoveLink moves the link at position from to position to inside a widget.
func (d *Document) MoveLink(widgetID string, from, to int) error {
	w := d.FindWidgetByID(widgetID)
	if w == nil {
		return fmt.Errorf("%w: %s", ErrWidgetNotFound, widgetID)
	}
	n := len(w.List)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: %d -> %d (len %d)", ErrInvalidPosition, from, to, n)
	}
	if from == to {
		return nil
	}
	link := w.List[from]
	w.List = slices.Delete(w.List, from, from+1)
	w.List = slices.Insert(w.List, to, link)
	return nil
}

func (d *Document) findLink(id string) *Link {
	var found *Link
	d.Walk(func(_ *Widget, l *Link) bool {
		if l.ID == id {
			found = l
			return false
		}
		return true
	})
	return found
}
