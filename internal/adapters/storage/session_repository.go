package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ronak-kumar-sing/makeit/internal/domain"
	"github.com/ronak-kumar-sing/makeit/internal/ports"
)

// sessionRepository implements ports.SessionRepository using SQLite.
type sessionRepository struct {
	db *sql.DB
}

// newSessionRepository creates a new session repository.
func newSessionRepository(db *sql.DB) ports.SessionRepository {
	return &sessionRepository{db: db}
}

// RecordSession persists a completed focus session.
func (r *sessionRepository) RecordSession(ctx context.Context, rec domain.SessionRecord) error {
	query := `
		INSERT INTO sessions (id, duration_minutes, completed_at, subject, task_id, mode)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.DurationMinutes,
		rec.Timestamp.UTC(),
		rec.Subject,
		rec.TaskID,
		string(rec.Mode),
	)
	if err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}
	return nil
}

// FindRecent retrieves sessions completed since the given time.
func (r *sessionRepository) FindRecent(ctx context.Context, since time.Time) ([]domain.SessionRecord, error) {
	query := `
		SELECT id, duration_minutes, completed_at, subject, task_id, mode
		FROM sessions
		WHERE completed_at >= ?
		ORDER BY completed_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query recent sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []domain.SessionRecord
	for rows.Next() {
		var (
			rec     domain.SessionRecord
			mode    string
			subject sql.NullString
			taskID  sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.DurationMinutes, &rec.Timestamp, &subject, &taskID, &mode); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		rec.Mode = domain.TimerMode(mode)
		rec.Subject = nullableString(subject)
		rec.TaskID = nullableString(taskID)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetDailyStats returns aggregated focus statistics for a specific date.
func (r *sessionRepository) GetDailyStats(ctx context.Context, date time.Time) (*domain.DailyStats, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).UTC()
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `
		SELECT COUNT(*), COALESCE(SUM(duration_minutes), 0)
		FROM sessions
		WHERE mode = ? AND completed_at >= ? AND completed_at < ?
	`

	stats := &domain.DailyStats{Date: date}
	err := r.db.QueryRowContext(ctx, query, string(domain.ModeFocus), dayStart, dayEnd).
		Scan(&stats.FocusSessions, &stats.FocusMinutes)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	return stats, nil
}

// GetStreak returns the number of consecutive days with at least one
// completed focus session, ending today or yesterday so that an
// in-progress day does not break the chain.
func (r *sessionRepository) GetStreak(ctx context.Context, today time.Time) (int, error) {
	query := `
		SELECT completed_at
		FROM sessions
		WHERE mode = ?
		ORDER BY completed_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, string(domain.ModeFocus))
	if err != nil {
		return 0, fmt.Errorf("failed to query sessions for streak: %w", err)
	}
	defer func() { _ = rows.Close() }()

	dayOf := func(t time.Time) time.Time {
		t = t.In(today.Location())
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, today.Location())
	}

	var days []time.Time
	for rows.Next() {
		var completedAt time.Time
		if err := rows.Scan(&completedAt); err != nil {
			return 0, fmt.Errorf("failed to scan session time: %w", err)
		}
		day := dayOf(completedAt)
		if len(days) == 0 || !days[len(days)-1].Equal(day) {
			days = append(days, day)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(days) == 0 {
		return 0, nil
	}

	current := dayOf(today)
	if !days[0].Equal(current) && !days[0].Equal(current.AddDate(0, 0, -1)) {
		return 0, nil
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) != 24*time.Hour {
			break
		}
		streak++
	}
	return streak, nil
}
