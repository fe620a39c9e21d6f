package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestLoad_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.Data.Backend, BackendJSON)
	assert.Equal(t, cfg.Data.Path, filepath.Join(filepath.Dir(path), "links.json"))
	assert.Equal(t, cfg.Search.Debounce(), 150*time.Millisecond)
	assert.DeepEqual(t, cfg.Shortcuts, DefaultShortcuts())

	_, err = os.Stat(path)
	assert.NilError(t, err, "defaults should be written on first run")

	again, err := Load(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, again, cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("ML_TEST_DATA", "/tmp/links.db")
	writeFile(t, path, `
data:
  path: ${ML_TEST_DATA}
  backend: sqlite
search:
  mode: fuzzy
  debounce_ms: 50
shortcuts:
  - keys: g s
    action: find
`)

	cfg, err := Load(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.Data.Path, "/tmp/links.db")
	assert.Equal(t, cfg.Data.Backend, BackendSQLite)
	assert.Equal(t, cfg.Search.Mode, SearchFuzzy)
	assert.Equal(t, cfg.Search.DebounceMS, 50)
	assert.DeepEqual(t, cfg.Shortcuts, []ShortcutBinding{{Keys: "g s", Action: ActionFind}})
	assert.Equal(t, cfg.Server.Port, 7777)
	assert.Equal(t, cfg.Cull.Concurrency, 10)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad yaml", content: "data: [", wantErr: "failed to parse"},
		{name: "bad backend", content: "data:\n  backend: redis\n", wantErr: "data"},
		{name: "bad mode", content: "search:\n  mode: regex\n", wantErr: "search"},
		{name: "bad keys", content: "shortcuts:\n  - keys: hyper+x\n    action: find\n", wantErr: "key combination"},
		{name: "bad action", content: "shortcuts:\n  - keys: x\n    action: launch\n", wantErr: "shortcuts[0]"},
		{name: "bad port", content: "server:\n  port: 70000\n", wantErr: "server"},
		{name: "bad level", content: "log:\n  level: loud\n", wantErr: "log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeFile(t, path, tt.content)

			_, err := Load(path)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default(filepath.Dir(path))
	cfg.Cull.ExcludeDomains = []string{"example.com"}
	cfg.Server.Token = "secret"

	assert.NilError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(string(data), "exclude_domains"))

	loaded, err := Load(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, loaded, cfg)
}

func TestLogConfig_Logging(t *testing.T) {
	c := LogConfig{File: "x.log", Level: "debug", Format: "json", MaxSizeMB: 1, MaxBackups: 3}
	got := c.Logging()
	assert.Equal(t, got.FilePath, "x.log")
	assert.Equal(t, string(got.Format), "json")
	assert.Equal(t, got.MaxBackups, 3)
}

func TestServerConfig_Address(t *testing.T) {
	c := ServerConfig{Port: 8080}
	assert.Equal(t, c.Address(), ":8080")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(strings.TrimLeft(content, "\n")), 0644); err != nil {
		t.Fatal(err)
	}
}
