package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ronak-kumar-sing/makeit/internal/adapters/background"
	"github.com/ronak-kumar-sing/makeit/internal/adapters/notification"
	"github.com/ronak-kumar-sing/makeit/internal/adapters/storage"
	"github.com/ronak-kumar-sing/makeit/internal/config"
	"github.com/ronak-kumar-sing/makeit/internal/engine"
	"github.com/ronak-kumar-sing/makeit/internal/ports"
)

// appDeps groups all dependencies initialized at startup.
type appDeps struct {
	config    *config.Config
	storage   ports.Storage
	notifier  *notification.Notifier
	registrar *background.Registrar
	engine    *engine.Engine
	logger    *slog.Logger
}

// app holds all initialized dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up the storage, adapters and the timer engine,
// then reconciles the persisted timer state so every command observes
// the true countdown, however long the process was gone.
func initializeServices() error {
	app.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	// Load configuration
	var err error
	app.config, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		app.config = config.DefaultConfig()
	}

	// Initialize notifier
	app.notifier = notification.New(&app.config.Notifications)

	// Determine database path
	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// Initialize storage
	app.storage, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize background refresh
	app.registrar = background.New(time.Duration(app.config.Background.RefreshInterval), app.logger)

	// Initialize the timer engine
	app.engine = engine.New(engine.Deps{
		Store:     app.storage.TimerState(),
		Notifier:  app.notifier,
		Registrar: app.registrar,
		Recorder:  app.storage.Sessions(),
		Progress:  app.storage.Tasks(),
		Settings:  config.NewSettings(app.config),
		Logger:    app.logger,
	})

	// Every invocation is a foreground transition: recompute the timer
	// from the persisted record before the command runs.
	if err := app.engine.ReconcileOnForeground(context.Background()); err != nil {
		return fmt.Errorf("failed to reconcile timer state: %w", err)
	}

	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.engine != nil {
		app.engine.Close()
	}
	if app.registrar != nil {
		app.registrar.Stop()
	}
	if app.storage != nil {
		return app.storage.Close()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// formatCmdDuration formats a duration as MM:SS.
func formatCmdDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}
