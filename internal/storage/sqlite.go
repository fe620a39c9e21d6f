package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/mylinks/internal/model"
)

const currentSchemaVersion = 2

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the schema version recorded in the database.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema. Rows are keyed by their position in
// the document so that duplicate ids survive a round trip and can be reported.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY NOT NULL,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS widgets (
			col INTEGER NOT NULL,
			position INTEGER NOT NULL,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			PRIMARY KEY (col, position)
		);

		CREATE TABLE IF NOT EXISTS links (
			col INTEGER NOT NULL,
			widget_position INTEGER NOT NULL,
			position INTEGER NOT NULL,
			id TEXT NOT NULL,
			label TEXT NOT NULL,
			url TEXT NOT NULL,
			PRIMARY KEY (col, widget_position, position)
		);

		CREATE INDEX IF NOT EXISTS idx_links_id ON links(id);

		CREATE TABLE IF NOT EXISTS link_shortcuts (
			col INTEGER NOT NULL,
			widget_position INTEGER NOT NULL,
			link_position INTEGER NOT NULL,
			position INTEGER NOT NULL,
			combination TEXT NOT NULL,
			PRIMARY KEY (col, widget_position, link_position, position)
		);

		CREATE TABLE IF NOT EXISTS multi_open (
			position INTEGER PRIMARY KEY NOT NULL,
			shortcut TEXT NOT NULL,
			link_ids TEXT NOT NULL DEFAULT '[]'
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds the favicon column to links.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		ALTER TABLE links ADD COLUMN favicon TEXT NOT NULL DEFAULT '';
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

const (
	metaColumns   = "columns"
	metaTheme     = "theme"
	metaConfig    = "config"
	metaMultiOpen = "multi_open"
)

// Load reads the document from the SQLite database.
func (s *SQLiteStorage) Load() (*model.Document, error) {
	meta, err := s.loadMeta()
	if err != nil {
		return nil, err
	}

	doc := model.NewDocument()
	if n, err := strconv.Atoi(meta[metaColumns]); err == nil && n > 0 {
		doc.Columns = make([][]model.Widget, n)
	}
	if v, ok := meta[metaTheme]; ok {
		doc.Theme = &model.Theme{}
		if err := json.Unmarshal([]byte(v), doc.Theme); err != nil {
			return nil, err
		}
	}
	if v, ok := meta[metaConfig]; ok {
		doc.Config = &model.Config{}
		if err := json.Unmarshal([]byte(v), doc.Config); err != nil {
			return nil, err
		}
	}

	if err := s.loadWidgets(doc); err != nil {
		return nil, err
	}
	if err := s.loadLinks(doc); err != nil {
		return nil, err
	}
	if err := s.loadShortcuts(doc); err != nil {
		return nil, err
	}
	if _, ok := meta[metaMultiOpen]; ok {
		if err := s.loadMultiOpen(doc); err != nil {
			return nil, err
		}
	}

	doc.Normalize()
	return doc, nil
}

func (s *SQLiteStorage) loadMeta() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM meta")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		meta[k] = v
	}
	return meta, rows.Err()
}

func (s *SQLiteStorage) loadWidgets(doc *model.Document) error {
	rows, err := s.db.Query(`
		SELECT col, id, title
		FROM widgets
		ORDER BY col, position
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var col int
		w := model.Widget{List: []model.Link{}}
		if err := rows.Scan(&col, &w.ID, &w.Title); err != nil {
			return err
		}
		for len(doc.Columns) <= col {
			doc.Columns = append(doc.Columns, []model.Widget{})
		}
		doc.Columns[col] = append(doc.Columns[col], w)
	}
	return rows.Err()
}

func (s *SQLiteStorage) loadLinks(doc *model.Document) error {
	rows, err := s.db.Query(`
		SELECT col, widget_position, id, label, url, favicon
		FROM links
		ORDER BY col, widget_position, position
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var col, wpos int
		var l model.Link
		if err := rows.Scan(&col, &wpos, &l.ID, &l.Label, &l.URL, &l.Favicon); err != nil {
			return err
		}
		if w := widgetAt(doc, col, wpos); w != nil {
			w.List = append(w.List, l)
		}
	}
	return rows.Err()
}

func (s *SQLiteStorage) loadShortcuts(doc *model.Document) error {
	rows, err := s.db.Query(`
		SELECT col, widget_position, link_position, combination
		FROM link_shortcuts
		ORDER BY col, widget_position, link_position, position
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var col, wpos, lpos int
		var combo string
		if err := rows.Scan(&col, &wpos, &lpos, &combo); err != nil {
			return err
		}
		w := widgetAt(doc, col, wpos)
		if w == nil || lpos >= len(w.List) {
			continue
		}
		w.List[lpos].Shortcuts = append(w.List[lpos].Shortcuts, combo)
	}
	return rows.Err()
}

func (s *SQLiteStorage) loadMultiOpen(doc *model.Document) error {
	rows, err := s.db.Query(`
		SELECT shortcut, link_ids
		FROM multi_open
		ORDER BY position
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	doc.MultiOpen = &model.MultiOpen{}
	for rows.Next() {
		var e model.MultiOpenEntry
		var ids string
		if err := rows.Scan(&e.Shortcut, &ids); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(ids), &e.LinkIDs); err != nil {
			e.LinkIDs = []string{}
		}
		doc.MultiOpen.Shortcuts = append(doc.MultiOpen.Shortcuts, e)
	}
	return rows.Err()
}

func widgetAt(doc *model.Document, col, pos int) *model.Widget {
	if col < 0 || col >= len(doc.Columns) || pos < 0 || pos >= len(doc.Columns[col]) {
		return nil
	}
	return &doc.Columns[col][pos]
}

// Save writes the document to the SQLite database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(doc *model.Document) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Clear existing data
	for _, table := range []string{"meta", "widgets", "links", "link_shortcuts", "multi_open"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	meta := map[string]string{metaColumns: strconv.Itoa(len(doc.Columns))}
	if doc.Theme != nil {
		data, err := json.Marshal(doc.Theme)
		if err != nil {
			return err
		}
		meta[metaTheme] = string(data)
	}
	if doc.Config != nil {
		data, err := json.Marshal(doc.Config)
		if err != nil {
			return err
		}
		meta[metaConfig] = string(data)
	}
	if doc.MultiOpen != nil {
		meta[metaMultiOpen] = "1"
	}
	for k, v := range meta {
		if _, err := tx.Exec("INSERT INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return err
		}
	}

	widgetStmt, err := tx.Prepare(`
		INSERT INTO widgets (col, position, id, title)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer widgetStmt.Close()

	linkStmt, err := tx.Prepare(`
		INSERT INTO links (col, widget_position, position, id, label, url, favicon)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer linkStmt.Close()

	shortcutStmt, err := tx.Prepare(`
		INSERT INTO link_shortcuts (col, widget_position, link_position, position, combination)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer shortcutStmt.Close()

	for c, column := range doc.Columns {
		for wp, w := range column {
			if _, err := widgetStmt.Exec(c, wp, w.ID, w.Title); err != nil {
				return err
			}
			for lp, l := range w.List {
				if _, err := linkStmt.Exec(c, wp, lp, l.ID, l.Label, l.URL, l.Favicon); err != nil {
					return err
				}
				for sp, combo := range l.Shortcuts {
					if _, err := shortcutStmt.Exec(c, wp, lp, sp, combo); err != nil {
						return err
					}
				}
			}
		}
	}

	if doc.MultiOpen != nil {
		for i, e := range doc.MultiOpen.Shortcuts {
			ids := e.LinkIDs
			if ids == nil {
				ids = []string{}
			}
			idsJSON, err := json.Marshal(ids)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(
				"INSERT INTO multi_open (position, shortcut, link_ids) VALUES (?, ?, ?)",
				i, e.Shortcut, string(idsJSON),
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
