package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ronak-kumar-sing/makeit/internal/domain"
	"github.com/ronak-kumar-sing/makeit/internal/ports"
)

// taskRepository implements ports.TaskRepository using SQLite.
type taskRepository struct {
	db *sql.DB
}

// newTaskRepository creates a new task repository.
func newTaskRepository(db *sql.DB) ports.TaskRepository {
	return &taskRepository{db: db}
}

// Save persists a task to storage.
func (r *taskRepository) Save(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, title, subject, progress, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	completed := 0
	if task.Completed {
		completed = 1
	}

	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Subject,
		task.Progress,
		completed,
		task.CreatedAt.UTC(),
		task.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its unique identifier.
func (r *taskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `
		SELECT id, title, subject, progress, completed, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`

	return r.scanTask(r.db.QueryRowContext(ctx, query, id))
}

// FindAll retrieves all tasks, newest first.
func (r *taskRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	query := `
		SELECT id, title, subject, progress, completed, created_at, updated_at
		FROM tasks
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := r.scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// BumpProgress advances a task by delta percentage points, clamped to
// 100, auto-completing the task when it gets there.
func (r *taskRepository) BumpProgress(ctx context.Context, id string, delta int) error {
	task, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	task.BumpProgress(delta)

	completed := 0
	if task.Completed {
		completed = 1
	}
	query := `UPDATE tasks SET progress = ?, completed = ?, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, task.Progress, completed, task.UpdatedAt.UTC(), id); err != nil {
		return fmt.Errorf("failed to update task progress: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *taskRepository) scanTask(row rowScanner) (*domain.Task, error) {
	task, err := r.scanTaskRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	return task, err
}

func (r *taskRepository) scanTaskRow(row rowScanner) (*domain.Task, error) {
	var (
		task      domain.Task
		subject   sql.NullString
		completed int
	)
	err := row.Scan(&task.ID, &task.Title, &subject, &task.Progress, &completed, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	task.Subject = nullableString(subject)
	task.Completed = completed != 0
	return &task, nil
}
