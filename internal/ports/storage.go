// Package ports defines the interfaces (driven and driving ports)
// for the Make-It timer engine following hexagonal architecture
// principles. These interfaces define the contracts between the engine
// and external infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/ronak-kumar-sing/makeit/internal/domain"
)

// TimerStateStore persists the single timer record across process death.
// This is a driven port (implemented by adapters).
type TimerStateStore interface {
	// Write persists the timer state, replacing any previous record.
	Write(ctx context.Context, state domain.PersistedTimerState) error

	// Read retrieves the persisted timer state, or nil when none exists.
	Read(ctx context.Context) (*domain.PersistedTimerState, error)

	// Clear removes the persisted timer state.
	Clear(ctx context.Context) error
}

// SessionRepository persists completed focus sessions and serves the
// aggregates behind the app's statistics and streak views.
// This is a driven port (implemented by adapters).
type SessionRepository interface {
	// RecordSession persists a completed focus session.
	RecordSession(ctx context.Context, rec domain.SessionRecord) error

	// FindRecent retrieves sessions completed since the given time.
	FindRecent(ctx context.Context, since time.Time) ([]domain.SessionRecord, error)

	// GetDailyStats returns aggregated statistics for a specific date.
	GetDailyStats(ctx context.Context, date time.Time) (*domain.DailyStats, error)

	// GetStreak returns the number of consecutive days, ending today or
	// yesterday, with at least one completed focus session.
	GetStreak(ctx context.Context, today time.Time) (int, error)
}

// TaskRepository persists study tasks and their progress.
// This is a driven port (implemented by adapters).
type TaskRepository interface {
	// Save persists a task to storage.
	Save(ctx context.Context, task *domain.Task) error

	// FindByID retrieves a task by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// FindAll retrieves all tasks.
	FindAll(ctx context.Context) ([]*domain.Task, error)

	// BumpProgress advances a task by delta percentage points, clamped
	// to 100, marking the task complete when it gets there.
	BumpProgress(ctx context.Context, id string, delta int) error
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// TimerState provides access to the persisted timer record.
	TimerState() TimerStateStore

	// Sessions provides access to completed-session operations.
	Sessions() SessionRepository

	// Tasks provides access to task operations.
	Tasks() TaskRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
