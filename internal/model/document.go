package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Widget is a titled group of links. The order of List is the display order.
type Widget struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	List  []Link `json:"list"`
}

// Theme holds presentation settings. They are carried as data only.
type Theme struct {
	BackgroundImage   string `json:"backgroundImage,omitempty"`
	FaviconColor      string `json:"faviconColor,omitempty"`
	LinkKeyBackground string `json:"linkKeyBackground,omitempty"`
	LinkKeyColor      string `json:"linkKeyColor,omitempty"`
}

// Config holds document level settings.
type Config struct {
	FaviconService string `json:"faviconService,omitempty"`
}

// MultiOpenEntry binds one combination to several links opened together.
type MultiOpenEntry struct {
	Shortcut string
	LinkIDs  []string
}

// MultiOpen holds the "open all" shortcuts in declaration order.
type MultiOpen struct {
	Shortcuts []MultiOpenEntry
}

type multiOpenJSON struct {
	Shortcuts json.RawMessage `json:"shortcuts"`
}

// MarshalJSON writes the shortcuts as an object keyed by combination.
func (m MultiOpen) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(`{"shortcuts":{`)
	for i, e := range m.Shortcuts {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(e.Shortcut)
		if err != nil {
			return nil, err
		}
		ids := e.LinkIDs
		if ids == nil {
			ids = []string{}
		}
		value, err := json.Marshal(ids)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(value)
	}
	b.WriteString(`}}`)
	return b.Bytes(), nil
}

// UnmarshalJSON reads the shortcuts object keeping the order of its keys.
func (m *MultiOpen) UnmarshalJSON(data []byte) error {
	var raw multiOpenJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Shortcuts = nil
	if len(raw.Shortcuts) == 0 || string(raw.Shortcuts) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw.Shortcuts))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("multiOpen.shortcuts: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)

		var ids []string
		if err := dec.Decode(&ids); err != nil {
			return fmt.Errorf("multiOpen.shortcuts[%q]: %w", key, err)
		}
		m.Shortcuts = append(m.Shortcuts, MultiOpenEntry{Shortcut: key, LinkIDs: ids})
	}

	_, err = dec.Token()
	return err
}

// Document is the whole start page: columns of widgets of links.
type Document struct {
	Theme     *Theme     `json:"theme,omitempty"`
	Columns   [][]Widget `json:"columns"`
	Config    *Config    `json:"config,omitempty"`
	MultiOpen *MultiOpen `json:"multiOpen,omitempty"`
}

// NewDocument creates an empty Document with a single empty column.
func NewDocument() *Document {
	return &Document{
		Columns: [][]Widget{{}},
	}
}

// Normalize replaces nil slices so the document marshals with empty arrays.
func (d *Document) Normalize() {
	if d.Columns == nil {
		d.Columns = [][]Widget{{}}
	}
	for c := range d.Columns {
		if d.Columns[c] == nil {
			d.Columns[c] = []Widget{}
		}
		for w := range d.Columns[c] {
			if d.Columns[c][w].List == nil {
				d.Columns[c][w].List = []Link{}
			}
		}
	}
}

// Walk calls fn for every link in document order: column by column, widget by
// widget, link by link. Walking stops when fn returns false.
func (d *Document) Walk(fn func(w *Widget, l *Link) bool) {
	if d == nil {
		return
	}
	for c := range d.Columns {
		for i := range d.Columns[c] {
			w := &d.Columns[c][i]
			for j := range w.List {
				if !fn(w, &w.List[j]) {
					return
				}
			}
		}
	}
}

// FilterLinks returns the links accepted by fn in document order.
func (d *Document) FilterLinks(fn func(w *Widget, l *Link) bool) []*Link {
	var result []*Link
	d.Walk(func(w *Widget, l *Link) bool {
		if fn(w, l) {
			result = append(result, l)
		}
		return true
	})
	return result
}

// SomeLink returns true if fn accepts at least one link.
func (d *Document) SomeLink(fn func(w *Widget, l *Link) bool) bool {
	found := false
	d.Walk(func(w *Widget, l *Link) bool {
		if fn(w, l) {
			found = true
			return false
		}
		return true
	})
	return found
}

// Widgets returns pointers to all widgets in document order.
func (d *Document) Widgets() []*Widget {
	if d == nil {
		return nil
	}
	var result []*Widget
	for c := range d.Columns {
		for i := range d.Columns[c] {
			result = append(result, &d.Columns[c][i])
		}
	}
	return result
}

// FindWidgetByID finds a widget by ID, returns nil if not found.
func (d *Document) FindWidgetByID(id string) *Widget {
	for _, w := range d.Widgets() {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// LinkCount returns the number of links in the document.
func (d *Document) LinkCount() int {
	n := 0
	d.Walk(func(*Widget, *Link) bool {
		n++
		return true
	})
	return n
}
