// Package background runs periodic refresh callbacks while the app is
// not foregrounded.
package background

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ronak-kumar-sing/makeit/internal/ports"
)

// Registrar schedules a periodic handler on an in-process cron runner.
// It approximates the cadence a mobile OS would give a background task:
// the handler fires every interval while the process is alive, and all
// state changes still go through the persisted snapshot so a missed run
// only delays the notification, never the timer itself.
type Registrar struct {
	mu       sync.Mutex
	interval time.Duration
	logger   *slog.Logger
	runner   *cron.Cron
	entry    cron.EntryID
	active   bool
}

var _ ports.BackgroundRegistrar = (*Registrar)(nil)

// New creates a registrar firing at the given interval.
func New(interval time.Duration, logger *slog.Logger) *Registrar {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registrar{
		interval: interval,
		logger:   logger,
		runner:   cron.New(),
	}
}

// Register schedules the handler. Registering while a handler is
// already scheduled is a no-op.
func (r *Registrar) Register(handler func(ctx context.Context)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active {
		return nil
	}

	spec := fmt.Sprintf("@every %s", r.interval)
	entry, err := r.runner.AddFunc(spec, func() {
		handler(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule background refresh: %w", err)
	}

	r.entry = entry
	r.active = true
	r.runner.Start()
	r.logger.Debug("background refresh registered", "interval", r.interval)
	return nil
}

// Unregister stops the periodic handler. Unregistering when nothing is
// scheduled is a no-op.
func (r *Registrar) Unregister() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		return nil
	}

	r.runner.Remove(r.entry)
	r.active = false
	r.logger.Debug("background refresh unregistered")
	return nil
}

// Stop shuts the cron runner down, waiting for any in-flight handler.
func (r *Registrar) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx := r.runner.Stop()
	<-ctx.Done()
	r.active = false
}
