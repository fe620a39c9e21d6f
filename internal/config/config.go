// Package config loads the YAML configuration of ml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/nikbrunner/mylinks/internal/keycombo"
	"github.com/nikbrunner/mylinks/internal/logging"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Search modes.
const (
	SearchSubstring = "substring"
	SearchFuzzy     = "fuzzy"
)

// System shortcut actions.
const (
	ActionFind        = "find"
	ActionEdit        = "edit"
	ActionToggleHints = "toggle-hints"
	ActionReload      = "reload"
	ActionHelp        = "help"
	ActionQuit        = "quit"
)

// Config represents the application configuration.
type Config struct {
	Data      DataConfig        `yaml:"data"`
	Log       LogConfig         `yaml:"log"`
	Search    SearchConfig      `yaml:"search"`
	Shortcuts []ShortcutBinding `yaml:"shortcuts"`
	Server    ServerConfig      `yaml:"server"`
	Cull      CullConfig        `yaml:"cull"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Data.Validate(); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Search.Validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	for i := range c.Shortcuts {
		if err := c.Shortcuts[i].Validate(); err != nil {
			return fmt.Errorf("shortcuts[%d]: %w", i, err)
		}
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Cull.Validate(); err != nil {
		return fmt.Errorf("cull: %w", err)
	}
	return nil
}

// DataConfig says where the links document lives.
type DataConfig struct {
	Path    string `yaml:"path"`
	Backend string `yaml:"backend"`
}

// Validate validates the data configuration.
func (c *DataConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Backend, validation.Required, validation.In(BackendJSON, BackendSQLite)),
	)
}

// LogConfig holds the log file settings. An empty File disables logging.
type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Validate validates the log configuration.
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Format, validation.In(string(logging.FormatText), string(logging.FormatJSON))),
		validation.Field(&c.MaxSizeMB, validation.Min(0)),
		validation.Field(&c.MaxBackups, validation.Min(0)),
	)
}

// Logging converts the section into a logging.Config.
func (c *LogConfig) Logging() logging.Config {
	return logging.Config{
		FilePath:   c.File,
		Level:      logging.ParseLevel(c.Level),
		Format:     logging.ParseFormat(c.Format),
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
	}
}

// SearchConfig configures the link finder.
type SearchConfig struct {
	Mode       string `yaml:"mode"`
	DebounceMS int    `yaml:"debounce_ms"`
}

// Validate validates the search configuration.
func (c *SearchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(SearchSubstring, SearchFuzzy)),
		validation.Field(&c.DebounceMS, validation.Min(0), validation.Max(2000)),
	)
}

// Debounce returns the filter delay.
func (c *SearchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// ShortcutBinding binds a key combination to a system action.
type ShortcutBinding struct {
	Keys   string `yaml:"keys"`
	Action string `yaml:"action"`
}

var isCombination = validation.By(func(value any) error {
	if !keycombo.IsCombination(value) {
		return errors.New("must be a key combination such as \"ctrl+e\" or \"g h\"")
	}
	return nil
})

// Validate validates the binding.
func (c *ShortcutBinding) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Keys, validation.Required, isCombination),
		validation.Field(&c.Action, validation.Required, validation.In(
			ActionFind, ActionEdit, ActionToggleHints, ActionReload, ActionHelp, ActionQuit,
		)),
	)
}

// ServerConfig holds HTTP server configuration.
// An empty Token disables authentication.
type ServerConfig struct {
	Port  int    `yaml:"port"`
	Token string `yaml:"token"`
}

// Address returns HTTP server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *ServerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// CullConfig configures the dead link check.
type CullConfig struct {
	Concurrency    int      `yaml:"concurrency"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	ExcludeDomains []string `yaml:"exclude_domains"`
}

// Validate validates the cull configuration.
func (c *CullConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Concurrency, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.TimeoutSeconds, validation.Required, validation.Min(1)),
	)
}

// Timeout returns the per request timeout.
func (c *CullConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default returns the default configuration with files placed in dir.
func Default(dir string) *Config {
	return &Config{
		Data: DataConfig{
			Path:    filepath.Join(dir, "links.json"),
			Backend: BackendJSON,
		},
		Log: LogConfig{
			File:       filepath.Join(dir, "ml.log"),
			Level:      "info",
			Format:     string(logging.FormatText),
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
		Search: SearchConfig{
			Mode:       SearchSubstring,
			DebounceMS: 150,
		},
		Shortcuts: DefaultShortcuts(),
		Server: ServerConfig{
			Port: 7777,
		},
		Cull: CullConfig{
			Concurrency:    10,
			TimeoutSeconds: 10,
			ExcludeDomains: []string{"github.com", "gitlab.com"},
		},
	}
}

// DefaultShortcuts returns the system shortcuts bound when none are configured.
func DefaultShortcuts() []ShortcutBinding {
	return []ShortcutBinding{
		{Keys: "/", Action: ActionFind},
		{Keys: "ctrl+e", Action: ActionEdit},
		{Keys: "ctrl+t", Action: ActionToggleHints},
		{Keys: "ctrl+r", Action: ActionReload},
		{Keys: "?", Action: ActionHelp},
		{Keys: "ctrl+q", Action: ActionQuit},
	}
}

// DefaultDir returns the default config directory: ~/.config/mylinks
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "mylinks"), nil
}

// DefaultPath returns the default config path: ~/.config/mylinks/config.yaml
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file at path, expanding environment variables.
// Missing fields keep their defaults. When the file does not exist it is
// created with defaults.
func Load(path string) (*Config, error) {
	cfg := Default(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Non-fatal: return defaults even if save fails
			_ = Save(path, cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.Shortcuts == nil {
		cfg.Shortcuts = DefaultShortcuts()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
