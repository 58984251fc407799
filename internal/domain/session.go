package domain

import (
	"time"
)

// SessionRecord is the unit of completed focus time handed to the
// statistics and streak subsystem. Only naturally completed focus
// intervals produce records; breaks and skipped intervals never do.
type SessionRecord struct {
	ID              string
	DurationMinutes int
	Timestamp       time.Time
	Subject         *string
	TaskID          *string
	Mode            TimerMode
}

// NewSessionRecord creates a record for a focus interval that completed
// at the given instant.
func NewSessionRecord(durationMinutes int, subject, taskID *string, mode TimerMode, completedAt time.Time) SessionRecord {
	return SessionRecord{
		ID:              generateID(),
		DurationMinutes: durationMinutes,
		Timestamp:       completedAt,
		Subject:         subject,
		TaskID:          taskID,
		Mode:            mode,
	}
}

// DailyStats aggregates focus statistics for a single day.
type DailyStats struct {
	Date          time.Time
	FocusSessions int
	FocusMinutes  int
}

// Task represents a study task whose progress advances by a fixed
// increment per completed focus session.
type Task struct {
	ID        string
	Title     string
	Subject   *string
	Progress  int
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTask creates a new task with the given title.
func NewTask(title string, subject *string) (*Task, error) {
	if title == "" {
		return nil, ErrEmptyTaskTitle
	}
	now := time.Now()
	return &Task{
		ID:        generateID(),
		Title:     title,
		Subject:   subject,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// BumpProgress advances the task by delta percentage points, clamped to
// [0, 100]. Reaching 100 marks the task complete.
func (t *Task) BumpProgress(delta int) {
	t.Progress += delta
	if t.Progress >= 100 {
		t.Progress = 100
		t.Completed = true
	}
	if t.Progress < 0 {
		t.Progress = 0
	}
	t.UpdatedAt = time.Now()
}
