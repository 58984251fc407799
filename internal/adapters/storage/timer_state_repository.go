package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ronak-kumar-sing/makeit/internal/domain"
	"github.com/ronak-kumar-sing/makeit/internal/ports"
)

// timerStateRepository implements ports.TimerStateStore using SQLite.
// The table holds at most one row; the engine is its single writer.
type timerStateRepository struct {
	db *sql.DB
}

// newTimerStateRepository creates a new timer state repository.
func newTimerStateRepository(db *sql.DB) ports.TimerStateStore {
	return &timerStateRepository{db: db}
}

// Write persists the timer state, replacing any previous record.
func (r *timerStateRepository) Write(ctx context.Context, state domain.PersistedTimerState) error {
	query := `
		INSERT INTO timer_state (
			id, mode, end_time, time_left_seconds, is_running,
			task_title, task_id, subject, notification_id, updated_at
		)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode = excluded.mode,
			end_time = excluded.end_time,
			time_left_seconds = excluded.time_left_seconds,
			is_running = excluded.is_running,
			task_title = excluded.task_title,
			task_id = excluded.task_id,
			subject = excluded.subject,
			notification_id = excluded.notification_id,
			updated_at = excluded.updated_at
	`

	running := 0
	if state.IsRunning {
		running = 1
	}
	var endTime interface{}
	if state.EndTime != nil {
		endTime = state.EndTime.UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		string(state.Mode),
		endTime,
		state.TimeLeftSeconds,
		running,
		state.TaskTitle,
		state.TaskID,
		state.Subject,
		state.NotificationID,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write timer state: %w", err)
	}
	return nil
}

// Read retrieves the persisted timer state, or nil when none exists.
func (r *timerStateRepository) Read(ctx context.Context) (*domain.PersistedTimerState, error) {
	query := `
		SELECT mode, end_time, time_left_seconds, is_running,
		       task_title, task_id, subject, notification_id
		FROM timer_state
		WHERE id = 1
	`

	var (
		mode           string
		endTime        sql.NullTime
		timeLeft       int
		running        int
		taskTitle      sql.NullString
		taskID         sql.NullString
		subject        sql.NullString
		notificationID sql.NullString
	)

	err := r.db.QueryRowContext(ctx, query).Scan(
		&mode, &endTime, &timeLeft, &running,
		&taskTitle, &taskID, &subject, &notificationID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read timer state: %w", err)
	}

	state := &domain.PersistedTimerState{
		Mode:            domain.TimerMode(mode),
		TimeLeftSeconds: timeLeft,
		IsRunning:       running != 0,
		TaskTitle:       nullableString(taskTitle),
		TaskID:          nullableString(taskID),
		Subject:         nullableString(subject),
		NotificationID:  nullableString(notificationID),
	}
	if endTime.Valid {
		t := endTime.Time
		state.EndTime = &t
	}
	return state, nil
}

// Clear removes the persisted timer state.
func (r *timerStateRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM timer_state WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to clear timer state: %w", err)
	}
	return nil
}

// nullableString converts a NullString into a *string.
func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
