package storage

import (
	"context"
	"testing"
	"time"

	"github.com/ronak-kumar-sing/makeit/internal/domain"
)

func TestNewMemory(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	if storage == nil {
		t.Error("NewMemory() returned nil storage")
	}
}

func TestTimerStateRepository_RoundTrip(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	store := storage.TimerState()

	t.Run("read before first write returns nil", func(t *testing.T) {
		state, err := store.Read(ctx)
		if err != nil {
			t.Errorf("Read() error = %v", err)
		}
		if state != nil {
			t.Errorf("Read() = %+v, want nil", state)
		}
	})

	t.Run("running state round trip", func(t *testing.T) {
		end := time.Now().Add(25 * time.Minute).UTC().Truncate(time.Second)
		title := "Revise algebra"
		taskID := "task-1"
		notifID := "notif-1"

		in := domain.PersistedTimerState{
			Mode:            domain.ModeFocus,
			EndTime:         &end,
			TimeLeftSeconds: 1500,
			IsRunning:       true,
			TaskTitle:       &title,
			TaskID:          &taskID,
			NotificationID:  &notifID,
		}
		if err := store.Write(ctx, in); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		out, err := store.Read(ctx)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if out == nil {
			t.Fatal("Read() returned nil")
		}
		if out.Mode != domain.ModeFocus || !out.IsRunning {
			t.Errorf("Read() = %+v, want running focus", out)
		}
		if out.EndTime == nil || !out.EndTime.Equal(end) {
			t.Errorf("EndTime = %v, want %v", out.EndTime, end)
		}
		if out.TaskTitle == nil || *out.TaskTitle != title {
			t.Error("task title not preserved")
		}
		if out.NotificationID == nil || *out.NotificationID != notifID {
			t.Error("notification id not preserved")
		}
	})

	t.Run("write replaces the single record", func(t *testing.T) {
		paused := domain.PersistedTimerState{
			Mode:            domain.ModeShortBreak,
			TimeLeftSeconds: 120,
		}
		if err := store.Write(ctx, paused); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		out, err := store.Read(ctx)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if out.IsRunning || out.EndTime != nil {
			t.Error("paused record must have no end time and not be running")
		}
		if out.TimeLeftSeconds != 120 {
			t.Errorf("TimeLeftSeconds = %d, want 120", out.TimeLeftSeconds)
		}
		if out.TaskTitle != nil {
			t.Error("replaced record should drop the previous task title")
		}
	})

	t.Run("clear removes the record", func(t *testing.T) {
		if err := store.Clear(ctx); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		state, err := store.Read(ctx)
		if err != nil {
			t.Errorf("Read() after Clear() error = %v", err)
		}
		if state != nil {
			t.Error("Read() after Clear() should return nil")
		}

		// Clearing an empty store is fine.
		if err := store.Clear(ctx); err != nil {
			t.Errorf("Clear() on empty store error = %v", err)
		}
	})
}

func TestSessionRepository_RecordAndStats(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Sessions()
	today := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	record := func(at time.Time) {
		t.Helper()
		rec := domain.NewSessionRecord(25, nil, nil, domain.ModeFocus, at)
		if err := repo.RecordSession(ctx, rec); err != nil {
			t.Fatalf("RecordSession() error = %v", err)
		}
	}

	record(today.Add(-2 * time.Hour))
	record(today.Add(-1 * time.Hour))
	record(today.AddDate(0, 0, -1))
	record(today.AddDate(0, 0, -2))

	t.Run("daily stats count only the given day", func(t *testing.T) {
		stats, err := repo.GetDailyStats(ctx, today)
		if err != nil {
			t.Fatalf("GetDailyStats() error = %v", err)
		}
		if stats.FocusSessions != 2 {
			t.Errorf("FocusSessions = %d, want 2", stats.FocusSessions)
		}
		if stats.FocusMinutes != 50 {
			t.Errorf("FocusMinutes = %d, want 50", stats.FocusMinutes)
		}
	})

	t.Run("streak counts consecutive days", func(t *testing.T) {
		streak, err := repo.GetStreak(ctx, today)
		if err != nil {
			t.Fatalf("GetStreak() error = %v", err)
		}
		if streak != 3 {
			t.Errorf("GetStreak() = %d, want 3", streak)
		}
	})

	t.Run("find recent", func(t *testing.T) {
		recs, err := repo.FindRecent(ctx, today.Add(-3*time.Hour))
		if err != nil {
			t.Fatalf("FindRecent() error = %v", err)
		}
		if len(recs) != 2 {
			t.Errorf("FindRecent() returned %d records, want 2", len(recs))
		}
	})
}

func TestSessionRepository_StreakBreaks(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Sessions()
	today := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("no sessions means no streak", func(t *testing.T) {
		streak, err := repo.GetStreak(ctx, today)
		if err != nil {
			t.Fatalf("GetStreak() error = %v", err)
		}
		if streak != 0 {
			t.Errorf("GetStreak() = %d, want 0", streak)
		}
	})

	t.Run("stale streak from days ago does not count", func(t *testing.T) {
		rec := domain.NewSessionRecord(25, nil, nil, domain.ModeFocus, today.AddDate(0, 0, -3))
		if err := repo.RecordSession(ctx, rec); err != nil {
			t.Fatalf("RecordSession() error = %v", err)
		}
		streak, err := repo.GetStreak(ctx, today)
		if err != nil {
			t.Fatalf("GetStreak() error = %v", err)
		}
		if streak != 0 {
			t.Errorf("GetStreak() = %d, want 0", streak)
		}
	})

	t.Run("yesterday keeps the streak alive", func(t *testing.T) {
		rec := domain.NewSessionRecord(25, nil, nil, domain.ModeFocus, today.AddDate(0, 0, -1))
		if err := repo.RecordSession(ctx, rec); err != nil {
			t.Fatalf("RecordSession() error = %v", err)
		}
		streak, err := repo.GetStreak(ctx, today)
		if err != nil {
			t.Fatalf("GetStreak() error = %v", err)
		}
		if streak != 1 {
			t.Errorf("GetStreak() = %d, want 1", streak)
		}
	})
}

func TestTaskRepository_SaveAndFind(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Tasks()

	t.Run("save and find by id", func(t *testing.T) {
		subject := "History"
		task, _ := domain.NewTask("Outline essay", &subject)
		if err := repo.Save(ctx, task); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		found, err := repo.FindByID(ctx, task.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Title != task.Title {
			t.Errorf("Found task title = %v, want %v", found.Title, task.Title)
		}
		if found.Subject == nil || *found.Subject != subject {
			t.Error("subject not preserved")
		}
	})

	t.Run("find non-existent", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "non-existent-id")
		if err != domain.ErrTaskNotFound {
			t.Errorf("FindByID() error = %v, want ErrTaskNotFound", err)
		}
	})
}

func TestTaskRepository_BumpProgress(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Tasks()

	task, _ := domain.NewTask("Work through problem set", nil)
	if err := repo.Save(ctx, task); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	t.Run("fixed increment per session", func(t *testing.T) {
		if err := repo.BumpProgress(ctx, task.ID, 20); err != nil {
			t.Fatalf("BumpProgress() error = %v", err)
		}
		found, _ := repo.FindByID(ctx, task.ID)
		if found.Progress != 20 || found.Completed {
			t.Errorf("task = %d%%/%v, want 20%%/incomplete", found.Progress, found.Completed)
		}
	})

	t.Run("clamps at 100 and auto-completes", func(t *testing.T) {
		for i := 0; i < 6; i++ {
			if err := repo.BumpProgress(ctx, task.ID, 20); err != nil {
				t.Fatalf("BumpProgress() error = %v", err)
			}
		}
		found, _ := repo.FindByID(ctx, task.ID)
		if found.Progress != 100 {
			t.Errorf("Progress = %d, want 100", found.Progress)
		}
		if !found.Completed {
			t.Error("task should auto-complete at 100%")
		}
	})

	t.Run("unknown task", func(t *testing.T) {
		if err := repo.BumpProgress(ctx, "missing", 20); err != domain.ErrTaskNotFound {
			t.Errorf("BumpProgress() error = %v, want ErrTaskNotFound", err)
		}
	})
}
