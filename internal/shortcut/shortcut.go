// Package shortcut defines the shortcut variants and the registry of system
// shortcuts.
package shortcut

import (
	"github.com/nikbrunner/mylinks/internal/model"
)

// Kind tags a shortcut variant.
type Kind string

const (
	KindSystem    Kind = "system"
	KindLink      Kind = "link"
	KindLinkArray Kind = "linkArray"
)

// Shortcut is one of System, LinkShortcut or LinkArray.
type Shortcut interface {
	Kind() Kind
	Keys() string
	sealed()
}

// System maps a combination to an application level action.
type System struct {
	Combination string
	Action      string
}

func (System) Kind() Kind     { return KindSystem }
func (s System) Keys() string { return s.Combination }
func (System) sealed()        {}

// LinkShortcut maps a combination to a single link.
type LinkShortcut struct {
	Combination string
	Link        *model.Link
	Widget      *model.Widget
}

func (LinkShortcut) Kind() Kind     { return KindLink }
func (s LinkShortcut) Keys() string { return s.Combination }
func (LinkShortcut) sealed()        {}

// LinkArray maps a combination to links opened together.
type LinkArray struct {
	Combination string
	Links       []*model.Link
}

func (LinkArray) Kind() Kind     { return KindLinkArray }
func (s LinkArray) Keys() string { return s.Combination }
func (LinkArray) sealed()        {}

// URLs returns the URLs a shortcut opens. System shortcuts open nothing.
func URLs(s Shortcut) []string {
	switch v := s.(type) {
	case LinkShortcut:
		return []string{v.Link.URL}
	case LinkArray:
		urls := make([]string, 0, len(v.Links))
		for _, l := range v.Links {
			urls = append(urls, l.URL)
		}
		return urls
	default:
		return nil
	}
}
