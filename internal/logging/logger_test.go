package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantFile bool
	}{
		{
			name: "text file",
			config: Config{
				FilePath:   filepath.Join(t.TempDir(), "test.log"),
				Level:      slog.LevelInfo,
				Format:     FormatText,
				MaxSizeMB:  10,
				MaxBackups: 2,
			},
			wantFile: true,
		},
		{
			name: "json file",
			config: Config{
				FilePath:   filepath.Join(t.TempDir(), "test.log"),
				Level:      slog.LevelDebug,
				Format:     FormatJSON,
				MaxSizeMB:  10,
				MaxBackups: 2,
			},
			wantFile: true,
		},
		{
			name:   "empty filepath creates noop logger",
			config: Config{Level: slog.LevelInfo, Format: FormatText},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, closer := New(tt.config)
			if logger == nil || closer == nil {
				t.Fatal("New() returned nil")
			}
			logger.Info("hello", "key", "value")
			if err := closer.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			if !tt.wantFile {
				return
			}
			data, err := os.ReadFile(tt.config.FilePath)
			if err != nil {
				t.Fatalf("log file not written: %v", err)
			}
			if !strings.Contains(string(data), "hello") {
				t.Errorf("log file missing message: %s", data)
			}
		})
	}
}

func TestNewWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, Config{Level: slog.LevelWarn, Format: FormatJSON})

	logger.Info("skipped")
	logger.Warn("kept", "id", "a")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if entry["msg"] != "kept" || entry["id"] != "a" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  LogFormat
	}{
		{"json", FormatJSON},
		{"text", FormatText},
		{"invalid", FormatText},
		{"", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTime(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, Config{Level: slog.LevelDebug})

	ran := false
	Time(logger, "build index", func() { ran = true })

	if !ran {
		t.Error("fn was not called")
	}
	if !strings.Contains(buf.String(), "build index") || !strings.Contains(buf.String(), "duration=") {
		t.Errorf("unexpected log output %q", buf.String())
	}
}
