package shortcut_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/mylinks/internal/model"
	"github.com/nikbrunner/mylinks/internal/shortcut"
)

func TestRegistry_Register(t *testing.T) {
	var buf bytes.Buffer
	r := shortcut.NewRegistry(slog.New(slog.NewTextHandler(&buf, nil)))

	assert.Check(t, r.Register(shortcut.System{Combination: "g", Action: "openSettings"}))
	assert.Check(t, r.Register(shortcut.System{Combination: "ctrl+e", Action: "edit"}))
	assert.Check(t, r.Register(shortcut.System{Combination: "G", Action: "other"}), "shift+g differs from g")
	assert.Check(t, !r.Register(shortcut.System{Combination: "Ctrl+E", Action: "dup"}))
	assert.Check(t, !r.Register(shortcut.System{Combination: "hyper+x", Action: "bad"}))
	assert.Equal(t, r.Len(), 3)

	assert.Check(t, is.Contains(buf.String(), "already registered"))
	assert.Check(t, is.Contains(buf.String(), "malformed"))
}

func TestRegistry_FindByPrefix(t *testing.T) {
	r := shortcut.NewRegistry(nil)
	r.Register(shortcut.System{Combination: "g s", Action: "settings"})
	r.Register(shortcut.System{Combination: "x", Action: "close"})
	r.Register(shortcut.System{Combination: "g h", Action: "help"})

	var actions []string
	for _, s := range r.FindByPrefix("g") {
		sys, ok := s.(shortcut.System)
		assert.Assert(t, ok)
		actions = append(actions, sys.Action)
	}
	assert.DeepEqual(t, actions, []string{"settings", "help"})

	assert.Check(t, is.Len(r.FindByPrefix("g h"), 1))
	assert.Check(t, is.Len(r.FindByPrefix("z"), 0))
	assert.Check(t, is.Len(r.FindByPrefix(""), 0))
}

func TestRegistry_StoresCanonicalForm(t *testing.T) {
	r := shortcut.NewRegistry(nil)
	r.Register(shortcut.System{Combination: "Shift+Ctrl+K", Action: "a"})
	assert.Equal(t, r.All()[0].Combination, "ctrl+shift+k")
}

func TestRegistry_Clear(t *testing.T) {
	r := shortcut.NewRegistry(nil)
	r.Register(shortcut.System{Combination: "g", Action: "a"})
	r.Clear()
	assert.Equal(t, r.Len(), 0)
	assert.Check(t, r.Register(shortcut.System{Combination: "g", Action: "a"}))
}

func TestURLs(t *testing.T) {
	a := &model.Link{ID: "a", URL: "https://a.example"}
	b := &model.Link{ID: "b", URL: "https://b.example"}

	tests := []struct {
		name string
		s    shortcut.Shortcut
		want []string
	}{
		{name: "system", s: shortcut.System{Combination: "g"}, want: nil},
		{name: "link", s: shortcut.LinkShortcut{Combination: "a", Link: a}, want: []string{"https://a.example"}},
		{name: "array", s: shortcut.LinkArray{Combination: "o", Links: []*model.Link{a, b}}, want: []string{"https://a.example", "https://b.example"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shortcut.URLs(tt.s)
			assert.Equal(t, strings.Join(got, ","), strings.Join(tt.want, ","))
		})
	}
}
