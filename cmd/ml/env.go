package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/nikbrunner/mylinks/internal/config"
	"github.com/nikbrunner/mylinks/internal/logging"
	"github.com/nikbrunner/mylinks/internal/mylinks"
	"github.com/nikbrunner/mylinks/internal/search"
	"github.com/nikbrunner/mylinks/internal/shortcut"
	"github.com/nikbrunner/mylinks/internal/storage"
)

// env is what every command needs: configuration, storage and the loaded
// document.
type env struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      storage.Storage
	holder     *mylinks.Holder
	searchMode search.Mode

	logCloser io.Closer
}

// loadEnv reads the config, opens the logger and storage, and loads the
// document. logger overrides the configured log file when not nil.
func loadEnv(cmd *cli.Command, logger *slog.Logger) (*env, error) {
	path := cmd.String("config")
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("getting config path: %w", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, logger: logger}
	if e.logger == nil {
		e.logger, e.logCloser = logging.New(cfg.Log.Logging())
	}

	e.searchMode, err = search.ParseMode(cfg.Search.Mode)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.store, err = storage.OpenStorage(cfg.Data.Backend, cfg.Data.Path)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	doc, err := e.store.Load()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("loading links: %w", err)
	}

	e.holder = mylinks.New(doc, newRegistry(cfg.Shortcuts, e.logger), e.logger)
	if err := e.holder.Check(); err != nil {
		e.logger.Warn("document has problems, run ml check", "error", err)
	}

	e.logger.Info("links loaded",
		slog.String("path", cfg.Data.Path),
		slog.String("backend", cfg.Data.Backend),
		slog.Int("links", doc.LinkCount()))
	return e, nil
}

func newRegistry(bindings []config.ShortcutBinding, logger *slog.Logger) *shortcut.Registry {
	reg := shortcut.NewRegistry(logger)
	for _, b := range bindings {
		reg.Register(shortcut.System{Combination: b.Keys, Action: b.Action})
	}
	return reg
}

// save writes the holder's document back to storage.
func (e *env) save() error {
	if err := e.store.Save(e.holder.Document()); err != nil {
		return fmt.Errorf("saving links: %w", err)
	}
	return nil
}

// Close releases storage and the log file.
func (e *env) Close() {
	if e.store != nil {
		if err := storage.Close(e.store); err != nil {
			e.logger.Error("closing storage", "error", err)
		}
	}
	if e.logCloser != nil {
		_ = e.logCloser.Close()
	}
}
