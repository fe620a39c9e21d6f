package storage_test

import (
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/mylinks/internal/model"
	"github.com/nikbrunner/mylinks/internal/storage"
)

func openSQLite(t *testing.T, path string) *storage.SQLiteStorage {
	t.Helper()
	s, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStorage_SaveAndLoad(t *testing.T) {
	s := openSQLite(t, filepath.Join(t.TempDir(), "links.db"))

	doc := sampleDocument()
	assert.NilError(t, s.Save(doc))

	loaded, err := s.Load()
	assert.NilError(t, err)
	assert.DeepEqual(t, loaded, doc)
}

func TestSQLiteStorage_EmptyDatabase(t *testing.T) {
	s := openSQLite(t, filepath.Join(t.TempDir(), "empty.db"))

	doc, err := s.Load()
	assert.NilError(t, err)
	assert.Equal(t, len(doc.Columns), 1)
	assert.Equal(t, doc.LinkCount(), 0)
	assert.Check(t, doc.MultiOpen == nil)
}

func TestSQLiteStorage_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "links.db")
	s := openSQLite(t, path)
	assert.Equal(t, s.Path(), path)

	version, err := s.SchemaVersion()
	assert.NilError(t, err)
	assert.Equal(t, version, 2)
}

func TestSQLiteStorage_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.db")

	s, err := storage.NewSQLiteStorage(path)
	assert.NilError(t, err)
	assert.NilError(t, s.Save(sampleDocument()))
	assert.NilError(t, s.Close())

	reopened := openSQLite(t, path)
	doc, err := reopened.Load()
	assert.NilError(t, err)
	assert.Equal(t, doc.LinkCount(), 3)
}

func TestSQLiteStorage_SaveReplacesEverything(t *testing.T) {
	s := openSQLite(t, filepath.Join(t.TempDir(), "links.db"))
	assert.NilError(t, s.Save(sampleDocument()))

	smaller := &model.Document{Columns: [][]model.Widget{
		{{ID: "w9", Title: "Only", List: []model.Link{{ID: "z", Label: "Z", URL: "https://z.example"}}}},
	}}
	assert.NilError(t, s.Save(smaller))

	loaded, err := s.Load()
	assert.NilError(t, err)
	assert.DeepEqual(t, loaded, smaller)
}

func TestSQLiteStorage_KeepsDuplicateIDs(t *testing.T) {
	s := openSQLite(t, filepath.Join(t.TempDir(), "links.db"))

	doc := &model.Document{Columns: [][]model.Widget{{
		{ID: "w1", Title: "A", List: []model.Link{{ID: "dup", Label: "One", URL: "1"}}},
		{ID: "w2", Title: "B", List: []model.Link{{ID: "dup", Label: "Two", URL: "2"}}},
	}}}
	assert.NilError(t, s.Save(doc))

	loaded, err := s.Load()
	assert.NilError(t, err)
	assert.Equal(t, loaded.LinkCount(), 2)
}
