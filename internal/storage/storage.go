// Package storage persists the links document.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nikbrunner/mylinks/internal/model"
)

// Storage defines the interface for persisting the links document.
type Storage interface {
	Load() (*model.Document, error)
	Save(doc *model.Document) error
}

// JSONStorage implements Storage using a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the document from the JSON file.
// Returns an empty document if the file doesn't exist.
func (s *JSONStorage) Load() (*model.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewDocument(), nil
		}
		return nil, err
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	// Ensure slices are not nil
	doc.Normalize()
	return &doc, nil
}

// Save writes the document to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(doc *model.Document) error {
	// Ensure directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	doc.Normalize()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// OpenStorage opens the storage backend for path. An empty backend selects JSON.
func OpenStorage(backend, path string) (Storage, error) {
	switch backend {
	case "", BackendJSON:
		return NewJSONStorage(path), nil
	case BackendSQLite:
		s, err := NewSQLiteStorage(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Close releases s if it holds resources.
func Close(s Storage) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
