package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nikbrunner/mylinks/internal/keycombo"
)

// ErrInvalidShortcut is returned when a shortcut is not a valid key combination.
var ErrInvalidShortcut = errors.New("invalid shortcut")

// Link is a single entry on the start page.
type Link struct {
	ID        string       `json:"id"`
	Label     string       `json:"label"`
	URL       string       `json:"url"`
	Favicon   string       `json:"favicon,omitempty"`
	Shortcuts Combinations `json:"shortcut,omitempty"`
}

// HasShortcut returns true if at least one key combination is bound to the link.
func (l Link) HasShortcut() bool {
	return len(l.Shortcuts) > 0
}

// Combinations holds the key combinations bound to a link.
// In JSON it is either a single string or an array of strings.
type Combinations []string

// MarshalJSON writes a single combination as a plain string.
func (c Combinations) MarshalJSON() ([]byte, error) {
	if len(c) == 1 {
		return json.Marshal(c[0])
	}
	return json.Marshal([]string(c))
}

// UnmarshalJSON accepts a string, an array of strings, or null. Strings that
// do not parse as combinations are kept; they never match a pattern and
// Holder.Check reports them.
func (c *Combinations) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*c = nil
	case string:
		if v == "" {
			*c = nil
			return nil
		}
		*c = Combinations{v}
	case []any:
		list := make(Combinations, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("%w: unexpected %T in list", ErrInvalidShortcut, item)
			}
			list = append(list, s)
		}
		if len(list) == 0 {
			list = nil
		}
		*c = list
	default:
		return fmt.Errorf("%w: unexpected %T", ErrInvalidShortcut, raw)
	}
	return nil
}

// Matching returns the first bound combination that starts with pattern.
func (c Combinations) Matching(pattern string) (string, bool) {
	for _, combo := range c {
		if keycombo.StartsWith(pattern, combo) {
			return combo, true
		}
	}
	return "", false
}
