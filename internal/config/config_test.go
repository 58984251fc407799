package config

import (
	"testing"
	"time"
)

func TestDefaultConfig_TimerDurations(t *testing.T) {
	cfg := DefaultConfig()
	if time.Duration(cfg.Timer.FocusDuration) != 25*time.Minute {
		t.Errorf("expected default focus duration 25m, got %v", cfg.Timer.FocusDuration)
	}
	if time.Duration(cfg.Timer.ShortBreak) != 5*time.Minute {
		t.Errorf("expected default short break 5m, got %v", cfg.Timer.ShortBreak)
	}
	if time.Duration(cfg.Timer.LongBreak) != 15*time.Minute {
		t.Errorf("expected default long break 15m, got %v", cfg.Timer.LongBreak)
	}
	if cfg.Timer.SessionsBeforeLong != 4 {
		t.Errorf("expected 4 sessions before long break, got %d", cfg.Timer.SessionsBeforeLong)
	}
}

func TestDuration_UnmarshalText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("25m")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if time.Duration(d) != 25*time.Minute {
		t.Errorf("expected 25m, got %v", d)
	}

	if err := d.UnmarshalText([]byte("not-a-duration")); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration(90 * time.Second)
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(text) != "1m30s" {
		t.Errorf("expected '1m30s', got %q", string(text))
	}
}

func TestToTimerConfig_FallsBackOnZeroValues(t *testing.T) {
	cfg := &Config{}
	timer := cfg.ToTimerConfig()

	if timer.FocusDuration != 25*time.Minute {
		t.Errorf("expected fallback focus duration 25m, got %v", timer.FocusDuration)
	}
	if timer.SessionsBeforeLong != 4 {
		t.Errorf("expected fallback sessions before long 4, got %d", timer.SessionsBeforeLong)
	}
}

func TestSettings_ProgressPerSession(t *testing.T) {
	s := NewSettings(&Config{Tasks: TasksConfig{ProgressPerSession: 10}})
	if got := s.ProgressPerSession(); got != 10 {
		t.Errorf("ProgressPerSession() = %d, want 10", got)
	}

	s = NewSettings(&Config{})
	if got := s.ProgressPerSession(); got != 20 {
		t.Errorf("ProgressPerSession() with zero config = %d, want default 20", got)
	}
}

func TestSettings_NilConfigUsesDefaults(t *testing.T) {
	s := NewSettings(nil)
	if !s.NotificationsEnabled() {
		t.Error("default settings should have notifications enabled")
	}
	if s.TimerConfig().FocusDuration != 25*time.Minute {
		t.Errorf("expected default focus duration, got %v", s.TimerConfig().FocusDuration)
	}
}
