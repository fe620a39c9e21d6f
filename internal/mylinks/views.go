package mylinks

import (
	"github.com/nikbrunner/mylinks/internal/model"
	"github.com/nikbrunner/mylinks/internal/shortcut"
)

// WidgetRef names the widget a link belongs to.
type WidgetRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// LinkView is a detached copy of a link and its widget.
type LinkView struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	URL       string     `json:"url"`
	Favicon   string     `json:"favicon,omitempty"`
	Shortcuts []string   `json:"shortcuts"`
	Widget    *WidgetRef `json:"widget,omitempty"`
}

// ShortcutView is a detached copy of a resolved shortcut.
type ShortcutView struct {
	Type   shortcut.Kind `json:"type"`
	Keys   string        `json:"keys"`
	Action string        `json:"action,omitempty"`
	Links  []LinkView    `json:"links,omitempty"`
}

// ViewLink copies l together with the widget holding it.
func (h *Holder) ViewLink(l *model.Link) LinkView {
	v := LinkView{
		ID:        l.ID,
		Label:     l.Label,
		URL:       l.URL,
		Favicon:   l.Favicon,
		Shortcuts: append([]string{}, l.Shortcuts...),
	}
	if w := h.FindWidgetByLinkID(l.ID); w != nil {
		v.Widget = &WidgetRef{ID: w.ID, Title: w.Title}
	}
	return v
}

// ViewShortcut copies a resolved shortcut.
func (h *Holder) ViewShortcut(s shortcut.Shortcut) ShortcutView {
	v := ShortcutView{Type: s.Kind(), Keys: s.Keys()}
	switch s := s.(type) {
	case shortcut.System:
		v.Action = s.Action
	case shortcut.LinkShortcut:
		v.Links = []LinkView{h.ViewLink(s.Link)}
	case shortcut.LinkArray:
		for _, l := range s.Links {
			v.Links = append(v.Links, h.ViewLink(l))
		}
	}
	return v
}

// ResolveViews resolves pattern and copies the result.
func (h *Holder) ResolveViews(pattern string) []ShortcutView {
	found := h.Resolve(pattern)
	views := make([]ShortcutView, 0, len(found))
	for _, s := range found {
		views = append(views, h.ViewShortcut(s))
	}
	return views
}
