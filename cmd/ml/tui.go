package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/nikbrunner/mylinks/internal/storage"
	"github.com/nikbrunner/mylinks/internal/tui"
)

// runTUI runs the start page and saves edits on quit.
func runTUI(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd, nil)
	if err != nil {
		return err
	}
	defer e.Close()

	app := tui.NewApp(tui.AppParams{
		Holder:     e.holder,
		Storage:    e.store,
		SearchMode: e.searchMode,
		Debounce:   e.cfg.Search.Debounce(),
		Logger:     e.logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	go func() {
		err := storage.Watch(watchCtx, e.cfg.Data.Path, e.logger, func() {
			doc, err := e.store.Load()
			p.Send(tui.ReloadMsg{Doc: doc, Err: err})
		})
		if err != nil {
			e.logger.Warn("watching links failed", "error", err)
		}
	}()

	finalModel, err := p.Run()
	stopWatch()
	if err != nil {
		return fmt.Errorf("running app: %w", err)
	}

	if finalModel.(tui.App).Dirty() {
		return e.save()
	}
	return nil
}
