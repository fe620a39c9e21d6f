package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/nikbrunner/mylinks/internal/model"
)

func strPtr(s string) *string { return &s }

// testDocument builds a two column document used by most tests.
func testDocument() *model.Document {
	return &model.Document{
		Columns: [][]model.Widget{
			{
				{ID: "w1", Title: "Media", List: []model.Link{
					{ID: "a", Label: "YouTube", URL: "https://youtube.com", Shortcuts: model.Combinations{"y"}},
					{ID: "b", Label: "Gmail", URL: "https://mail.google.com", Shortcuts: model.Combinations{"g"}},
				}},
			},
			{
				{ID: "w2", Title: "Dev", List: []model.Link{
					{ID: "c", Label: "GitHub", URL: "https://github.com"},
				}},
				{ID: "w3", Title: "Empty", List: []model.Link{}},
			},
		},
	}
}

func TestLink_ShortcutJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "single string", input: `{"id":"a","shortcut":"y"}`, want: []string{"y"}},
		{name: "array", input: `{"id":"a","shortcut":["y","g h"]}`, want: []string{"y", "g h"}},
		{name: "missing", input: `{"id":"a"}`, want: nil},
		{name: "null", input: `{"id":"a","shortcut":null}`, want: nil},
		{name: "empty string", input: `{"id":"a","shortcut":""}`, want: nil},
		{name: "empty array", input: `{"id":"a","shortcut":[]}`, want: nil},
		{name: "number", input: `{"id":"a","shortcut":3}`, wantErr: true},
		{name: "malformed combination kept", input: `{"id":"a","shortcut":"hyper+x"}`, want: []string{"hyper+x"}},
		{name: "malformed in array kept", input: `{"id":"a","shortcut":["y","a+b"]}`, want: []string{"y", "a+b"}},
		{name: "array with number", input: `{"id":"a","shortcut":["y",1]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got model.Link
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				if !errors.Is(err, model.ErrInvalidShortcut) {
					t.Fatalf("expected ErrInvalidShortcut, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got.Shortcuts) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got.Shortcuts)
			}
			for i := range tt.want {
				if got.Shortcuts[i] != tt.want[i] {
					t.Errorf("shortcut %d: got %q, want %q", i, got.Shortcuts[i], tt.want[i])
				}
			}
		})
	}
}

func TestLink_ShortcutJSON_WritesSingleAsString(t *testing.T) {
	data, err := json.Marshal(model.Link{ID: "a", Label: "A", URL: "u", Shortcuts: model.Combinations{"y"}})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	want := `{"id":"a","label":"A","url":"u","shortcut":"y"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	data, err = json.Marshal(model.Link{ID: "a", Label: "A", URL: "u"})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	want = `{"id":"a","label":"A","url":"u"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestMultiOpen_PreservesOrder(t *testing.T) {
	input := `{"columns":[],"multiOpen":{"shortcuts":{"z":["a"],"m":["b","c"],"a":[]}}}`

	var doc model.Document
	if err := json.Unmarshal([]byte(input), &doc); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if doc.MultiOpen == nil {
		t.Fatal("expected multiOpen to be set")
	}

	wantKeys := []string{"z", "m", "a"}
	if len(doc.MultiOpen.Shortcuts) != len(wantKeys) {
		t.Fatalf("expected %d entries, got %d", len(wantKeys), len(doc.MultiOpen.Shortcuts))
	}
	for i, k := range wantKeys {
		if doc.MultiOpen.Shortcuts[i].Shortcut != k {
			t.Errorf("entry %d: got %q, want %q", i, doc.MultiOpen.Shortcuts[i].Shortcut, k)
		}
	}

	data, err := json.Marshal(doc.MultiOpen)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	want := `{"shortcuts":{"z":["a"],"m":["b","c"],"a":[]}}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestMultiOpen_RejectsNonObject(t *testing.T) {
	var m model.MultiOpen
	if err := json.Unmarshal([]byte(`{"shortcuts":["a"]}`), &m); err == nil {
		t.Error("expected error for array shortcuts")
	}
}

func TestDocument_WalkOrder(t *testing.T) {
	doc := testDocument()

	var ids []string
	doc.Walk(func(w *model.Widget, l *model.Link) bool {
		ids = append(ids, w.ID+"/"+l.ID)
		return true
	})

	want := []string{"w1/a", "w1/b", "w2/c"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestDocument_SomeAndFilter(t *testing.T) {
	doc := testDocument()

	withShortcut := doc.FilterLinks(func(_ *model.Widget, l *model.Link) bool { return l.HasShortcut() })
	if len(withShortcut) != 2 {
		t.Errorf("expected 2 links with shortcuts, got %d", len(withShortcut))
	}

	if !doc.SomeLink(func(_ *model.Widget, l *model.Link) bool { return l.ID == "c" }) {
		t.Error("expected to find link c")
	}
	if doc.SomeLink(func(_ *model.Widget, l *model.Link) bool { return l.ID == "zz" }) {
		t.Error("should not find link zz")
	}

	var nilDoc *model.Document
	if nilDoc.SomeLink(func(*model.Widget, *model.Link) bool { return true }) {
		t.Error("nil document has no links")
	}
}

func TestDocument_FindWidgetByID(t *testing.T) {
	doc := testDocument()

	w := doc.FindWidgetByID("w2")
	if w == nil {
		t.Fatal("expected to find widget w2")
	}
	if w.Title != "Dev" {
		t.Errorf("expected title 'Dev', got %q", w.Title)
	}
	if doc.FindWidgetByID("nonexistent") != nil {
		t.Error("expected nil for nonexistent widget")
	}
}

func TestDocument_AddLink(t *testing.T) {
	doc := testDocument()

	l, err := doc.AddLink("w3", model.Link{Label: "Go", URL: "https://go.dev", Shortcuts: model.Combinations{"ctrl+g"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.ID == "" {
		t.Error("expected generated ID")
	}
	if len(doc.FindWidgetByID("w3").List) != 1 {
		t.Error("expected link appended to w3")
	}

	if _, err := doc.AddLink("missing", model.Link{}); !errors.Is(err, model.ErrWidgetNotFound) {
		t.Errorf("expected ErrWidgetNotFound, got %v", err)
	}
	if _, err := doc.AddLink("w3", model.Link{Shortcuts: model.Combinations{"ctrl+"}}); !errors.Is(err, model.ErrInvalidShortcut) {
		t.Errorf("expected ErrInvalidShortcut, got %v", err)
	}
}

func TestDocument_UpdateLink(t *testing.T) {
	tests := []struct {
		name         string
		edit         model.LinkEdit
		wantModified bool
		wantErr      error
		check        func(t *testing.T, l model.Link)
	}{
		{
			name:         "label change",
			edit:         model.LinkEdit{Label: strPtr("Tube")},
			wantModified: true,
			check: func(t *testing.T, l model.Link) {
				if l.Label != "Tube" {
					t.Errorf("label not updated: %q", l.Label)
				}
			},
		},
		{
			name:         "same label",
			edit:         model.LinkEdit{Label: strPtr("YouTube")},
			wantModified: false,
		},
		{
			name:         "equivalent shortcut is not a change",
			edit:         model.LinkEdit{Shortcuts: []string{" y "}},
			wantModified: false,
		},
		{
			name:         "new shortcuts",
			edit:         model.LinkEdit{Shortcuts: []string{"y t", "ctrl+y"}},
			wantModified: true,
			check: func(t *testing.T, l model.Link) {
				if len(l.Shortcuts) != 2 {
					t.Errorf("expected 2 shortcuts, got %v", l.Shortcuts)
				}
			},
		},
		{
			name:         "clear shortcuts",
			edit:         model.LinkEdit{Shortcuts: []string{}},
			wantModified: true,
			check: func(t *testing.T, l model.Link) {
				if l.HasShortcut() {
					t.Errorf("expected no shortcuts, got %v", l.Shortcuts)
				}
			},
		},
		{
			name:    "invalid shortcut",
			edit:    model.LinkEdit{Shortcuts: []string{"hyper+x"}},
			wantErr: model.ErrInvalidShortcut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDocument()
			modified, err := doc.UpdateLink("a", tt.edit)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if modified != tt.wantModified {
				t.Errorf("modified: got %v, want %v", modified, tt.wantModified)
			}
			if tt.check != nil {
				tt.check(t, doc.Columns[0][0].List[0])
			}
		})
	}

	doc := testDocument()
	if _, err := doc.UpdateLink("nonexistent", model.LinkEdit{}); !errors.Is(err, model.ErrLinkNotFound) {
		t.Errorf("expected ErrLinkNotFound, got %v", err)
	}
}

func TestDocument_DeleteLink(t *testing.T) {
	doc := testDocument()

	if !doc.DeleteLink("b") {
		t.Fatal("expected link b to be deleted")
	}
	if doc.LinkCount() != 2 {
		t.Errorf("expected 2 links left, got %d", doc.LinkCount())
	}
	if doc.DeleteLink("b") {
		t.Error("second delete should report false")
	}
}

func TestDocument_MoveLink(t *testing.T) {
	doc := testDocument()

	if err := doc.MoveLink("w1", 0, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := doc.FindWidgetByID("w1").List
	if list[0].ID != "b" || list[1].ID != "a" {
		t.Errorf("expected order b,a got %s,%s", list[0].ID, list[1].ID)
	}

	if err := doc.MoveLink("w1", 0, 5); !errors.Is(err, model.ErrInvalidPosition) {
		t.Errorf("expected ErrInvalidPosition, got %v", err)
	}
	if err := doc.MoveLink("nope", 0, 0); !errors.Is(err, model.ErrWidgetNotFound) {
		t.Errorf("expected ErrWidgetNotFound, got %v", err)
	}
}

func TestDocument_AddAndRenameWidget(t *testing.T) {
	doc := testDocument()

	w, err := doc.AddWidget(2, "News")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Columns) != 3 {
		t.Errorf("expected a third column, got %d", len(doc.Columns))
	}
	if err := doc.RenameWidget(w.ID, "Reading"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Columns[2][0].Title != "Reading" {
		t.Errorf("expected renamed widget, got %q", doc.Columns[2][0].Title)
	}

	if _, err := doc.AddWidget(7, "x"); !errors.Is(err, model.ErrInvalidPosition) {
		t.Errorf("expected ErrInvalidPosition, got %v", err)
	}
	if err := doc.RenameWidget("nope", "x"); !errors.Is(err, model.ErrWidgetNotFound) {
		t.Errorf("expected ErrWidgetNotFound, got %v", err)
	}
}

func TestDocument_Normalize(t *testing.T) {
	doc := &model.Document{Columns: [][]model.Widget{nil, {{ID: "w"}}}}
	doc.Normalize()

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	want := `{"columns":[[],[{"id":"w","title":"","list":[]}]]}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
