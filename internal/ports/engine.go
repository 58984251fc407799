package ports

import (
	"context"
	"time"

	"github.com/ronak-kumar-sing/makeit/internal/domain"
)

// Clock supplies the current wall-clock time. Abstracted so tests can
// inject a fake clock and reconcile suspended timers deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Notifier presents the single live timer notification.
// This is a driven port (implemented by adapters).
//
// The engine never assumes update-in-place semantics: it cancels and
// re-shows, holding at most one outstanding notification id in its
// persisted state.
type Notifier interface {
	// Show presents a notification and returns its id.
	Show(title, body string) (string, error)

	// Replace cancels the notification with the given id and shows a
	// new one, returning the new id.
	Replace(id, title, body string) (string, error)

	// Cancel removes the notification with the given id.
	Cancel(id string) error
}

// BackgroundRegistrar registers a periodic callback that runs while the
// app is not foregrounded, keeping the notification and persisted state
// approximately fresh. This is a driven port (implemented by adapters).
type BackgroundRegistrar interface {
	// Register schedules the handler to run periodically. Registering
	// twice is a no-op.
	Register(handler func(ctx context.Context)) error

	// Unregister stops the periodic callback.
	Unregister() error
}

// SessionRecorder receives completed focus-session records. Consumed by
// the app's statistics and streak module; this is a driving port from
// the engine's perspective.
type SessionRecorder interface {
	RecordSession(ctx context.Context, rec domain.SessionRecord) error
}

// TaskProgress advances task progress on focus-session completion.
type TaskProgress interface {
	BumpProgress(ctx context.Context, taskID string, delta int) error
}

// Settings exposes the timer configuration, read-only to the engine.
type Settings interface {
	// TimerConfig returns the configured countdown lengths.
	TimerConfig() domain.TimerConfig

	// NotificationsEnabled reports whether the engine may show
	// notifications. Timing and persistence run either way.
	NotificationsEnabled() bool

	// ProgressPerSession returns the fixed task-progress increment per
	// completed focus session.
	ProgressPerSession() int
}
