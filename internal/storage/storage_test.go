package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/mylinks/internal/model"
	"github.com/nikbrunner/mylinks/internal/mylinks"
	"github.com/nikbrunner/mylinks/internal/storage"
)

// sampleDocument covers every part of the document that must survive a round trip.
func sampleDocument() *model.Document {
	return &model.Document{
		Theme:  &model.Theme{BackgroundImage: "bg.png", LinkKeyColor: "#fff"},
		Config: &model.Config{FaviconService: "https://icons.example/{domain}"},
		Columns: [][]model.Widget{
			{
				{ID: "w1", Title: "Media", List: []model.Link{
					{ID: "a", Label: "YouTube", URL: "https://youtube.com", Shortcuts: model.Combinations{"y"}},
					{ID: "b", Label: "Gmail", URL: "https://mail.google.com", Favicon: "g.ico", Shortcuts: model.Combinations{"g m", "ctrl+g"}},
				}},
				{ID: "w2", Title: "Empty", List: []model.Link{}},
			},
			{},
			{
				{ID: "w3", Title: "Dev", List: []model.Link{
					{ID: "c", Label: "GitHub", URL: "https://github.com"},
				}},
			},
		},
		MultiOpen: &model.MultiOpen{Shortcuts: []model.MultiOpenEntry{
			{Shortcut: "o m", LinkIDs: []string{"a", "b"}},
			{Shortcut: "o a", LinkIDs: []string{"a", "b", "c"}},
		}},
	}
}

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "links.json")

	s := storage.NewJSONStorage(path)
	doc := sampleDocument()
	assert.NilError(t, s.Save(doc))

	// Verify file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("links file was not created")
	}

	loaded, err := s.Load()
	assert.NilError(t, err)
	assert.DeepEqual(t, loaded, doc)
}

func TestJSONStorage_LoadNonexistent(t *testing.T) {
	tmpDir := t.TempDir()
	s := storage.NewJSONStorage(filepath.Join(tmpDir, "nonexistent.json"))

	doc, err := s.Load()
	assert.NilError(t, err)
	assert.Equal(t, len(doc.Columns), 1)
	assert.Equal(t, doc.LinkCount(), 0)
}

func TestJSONStorage_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir", "links.json")

	s := storage.NewJSONStorage(path)
	assert.NilError(t, s.Save(model.NewDocument()))

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("links file was not created in nested directory")
	}
}

func TestJSONStorage_ReadsStartPageFormat(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "links.json")
	content := `{
  "theme": {"faviconColor": "#000"},
  "columns": [
    [
      {"id": "w1", "title": "Media", "list": [
        {"id": "a", "label": "YouTube", "url": "https://youtube.com", "shortcut": "y"},
        {"id": "b", "label": "Gmail", "url": "https://mail.google.com", "shortcut": ["g", "m"]},
        {"id": "c", "label": "Plain", "url": "https://example.com"}
      ]}
    ],
    []
  ],
  "multiOpen": {"shortcuts": {"o": ["a", "b"]}}
}`
	assert.NilError(t, os.WriteFile(path, []byte(content), 0644))

	doc, err := storage.NewJSONStorage(path).Load()
	assert.NilError(t, err)

	list := doc.Columns[0][0].List
	assert.DeepEqual(t, list[0].Shortcuts, model.Combinations{"y"})
	assert.DeepEqual(t, list[1].Shortcuts, model.Combinations{"g", "m"})
	assert.Check(t, !list[2].HasShortcut())
	assert.Equal(t, len(doc.Columns[1]), 0)
	assert.Equal(t, doc.MultiOpen.Shortcuts[0].Shortcut, "o")
}

func TestJSONStorage_RejectsInvalidShortcut(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "links.json")
	content := `{"columns": [[{"id": "w", "title": "W", "list": [{"id": "a", "label": "A", "url": "u", "shortcut": 5}]}]]}`
	assert.NilError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := storage.NewJSONStorage(path).Load()
	assert.ErrorIs(t, err, model.ErrInvalidShortcut)
}

func TestJSONStorage_KeepsMalformedShortcut(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "links.json")
	content := `{"columns": [[{"id": "w", "title": "W", "list": [
  {"id": "a", "label": "A", "url": "https://a.example", "shortcut": "a"},
  {"id": "b", "label": "B", "url": "https://b.example", "shortcut": "a+b"}
]}]]}`
	assert.NilError(t, os.WriteFile(path, []byte(content), 0644))

	doc, err := storage.NewJSONStorage(path).Load()
	assert.NilError(t, err)
	assert.Equal(t, doc.LinkCount(), 2)
	assert.DeepEqual(t, doc.Columns[0][0].List[1].Shortcuts, model.Combinations{"a+b"})

	h := mylinks.New(doc, nil, nil)
	found := h.Resolve("a")
	assert.Equal(t, len(found), 1)
	assert.Equal(t, found[0].Keys(), "a")
	assert.ErrorIs(t, h.Check(), model.ErrInvalidShortcut)
}

func TestOpenStorage(t *testing.T) {
	tmpDir := t.TempDir()

	s, err := storage.OpenStorage("", filepath.Join(tmpDir, "links.json"))
	assert.NilError(t, err)
	_, ok := s.(*storage.JSONStorage)
	assert.Check(t, ok)
	assert.NilError(t, storage.Close(s))

	s, err = storage.OpenStorage(storage.BackendSQLite, filepath.Join(tmpDir, "links.db"))
	assert.NilError(t, err)
	_, ok = s.(*storage.SQLiteStorage)
	assert.Check(t, ok)
	assert.NilError(t, storage.Close(s))

	_, err = storage.OpenStorage("redis", "x")
	assert.ErrorContains(t, err, "unknown storage backend")
}
