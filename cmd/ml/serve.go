package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/nikbrunner/mylinks/internal/api"
	"github.com/nikbrunner/mylinks/internal/logging"
	"github.com/nikbrunner/mylinks/internal/mcpserver"
	"github.com/nikbrunner/mylinks/internal/mylinks"
	"github.com/nikbrunner/mylinks/internal/storage"
)

// watchShared reloads the document into shared whenever the data file changes.
func watchShared(ctx context.Context, e *env, shared *mylinks.Shared) error {
	return storage.Watch(ctx, e.cfg.Data.Path, e.logger, func() {
		doc, err := e.store.Load()
		if err != nil {
			e.logger.Error("reload failed", slog.String("error", err.Error()))
			return
		}
		shared.Replace(doc)
		e.logger.Info("links reloaded", slog.Int("links", doc.LinkCount()))
	})
}

// runServe serves the HTTP API until interrupted.
func runServe(ctx context.Context, cmd *cli.Command) error {
	// The server owns no terminal, so it logs JSON to stdout.
	logger := logging.NewWriter(os.Stdout, logging.Config{
		Level:  slog.LevelInfo,
		Format: logging.FormatJSON,
	})
	slog.SetDefault(logger)

	e, err := loadEnv(cmd, logger)
	if err != nil {
		return err
	}
	defer e.Close()

	shared := mylinks.NewShared(e.holder)
	addr := e.cfg.Server.Address()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(shared, e.searchMode, e.cfg.Server.Token, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := watchShared(gCtx, e, shared); err != nil {
			logger.Warn("watching links failed", slog.String("error", err.Error()))
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// errShutdown stops the errgroup once the server was shut down, which
// cancels the watcher.
var errShutdown = errors.New("shutdown")

// runMCP serves the MCP tools on stdin/stdout.
func runMCP(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd, nil)
	if err != nil {
		return err
	}
	defer e.Close()

	shared := mylinks.NewShared(e.holder)

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	go func() {
		if err := watchShared(watchCtx, e, shared); err != nil {
			e.logger.Warn("watching links failed", slog.String("error", err.Error()))
		}
	}()

	return mcpserver.New(shared, e.searchMode, version).ServeStdio()
}
