// Package domain contains the core business entities for the Make-It
// study timer. These entities represent the fundamental concepts of the
// timer coordination engine and are independent of any external
// frameworks or infrastructure.
package domain

import (
	"errors"
	"fmt"
	"time"
)

// Common domain errors.
var (
	ErrTimerAlreadyRunning = errors.New("timer already running")
	ErrTimerNotRunning     = errors.New("timer not running")
	ErrInvalidTimerMode    = errors.New("invalid timer mode")
	ErrTaskNotFound        = errors.New("task not found")
	ErrEmptyTaskTitle      = errors.New("task title cannot be empty")
)

// TimerMode represents the current phase of the Pomodoro cycle.
type TimerMode string

const (
	ModeFocus      TimerMode = "focus"
	ModeShortBreak TimerMode = "short_break"
	ModeLongBreak  TimerMode = "long_break"
)

// ParseTimerMode converts a user-supplied string into a TimerMode.
func ParseTimerMode(s string) (TimerMode, error) {
	switch s {
	case "focus":
		return ModeFocus, nil
	case "short_break", "short-break", "short":
		return ModeShortBreak, nil
	case "long_break", "long-break", "long":
		return ModeLongBreak, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTimerMode, s)
	}
}

// IsBreak returns true for either break mode.
func (m TimerMode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

// Label returns a human-readable label for the mode.
func (m TimerMode) Label() string {
	switch m {
	case ModeFocus:
		return "Focus"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// TimerConfig holds the countdown lengths for each mode. It is read-only
// to the engine: changes apply at the next reset or mode switch, never
// retroactively to a running countdown.
type TimerConfig struct {
	FocusDuration      time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	SessionsBeforeLong int
}

// DefaultTimerConfig returns the standard pomodoro configuration.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		FocusDuration:      25 * time.Minute,
		ShortBreakDuration: 5 * time.Minute,
		LongBreakDuration:  15 * time.Minute,
		SessionsBeforeLong: 4,
	}
}

// DurationFor returns the configured countdown length for a mode.
func (c TimerConfig) DurationFor(mode TimerMode) time.Duration {
	switch mode {
	case ModeShortBreak:
		return c.ShortBreakDuration
	case ModeLongBreak:
		return c.LongBreakDuration
	default:
		return c.FocusDuration
	}
}

// PersistedTimerState is the only timer data that must survive process
// death. The countdown is anchored to the absolute EndTime; the cached
// TimeLeftSeconds is authoritative only while paused.
//
// Invariant: IsRunning implies EndTime != nil and EndTime in the future
// at the instant the record was written. A record that breaks the
// invariant on read is treated as a timer that completed while the
// process was suspended.
type PersistedTimerState struct {
	Mode            TimerMode
	EndTime         *time.Time
	TimeLeftSeconds int
	IsRunning       bool
	TaskTitle       *string
	TaskID          *string
	Subject         *string
	NotificationID  *string
}

// NewIdleState returns a fresh idle record for the given mode.
func NewIdleState(mode TimerMode, config TimerConfig) PersistedTimerState {
	return PersistedTimerState{
		Mode:            mode,
		TimeLeftSeconds: int(config.DurationFor(mode) / time.Second),
	}
}

// RemainingSeconds recomputes the remaining time at the given instant.
// A running state is derived from EndTime; a paused or idle state uses
// the stored TimeLeftSeconds.
func (s *PersistedTimerState) RemainingSeconds(now time.Time) int {
	if !s.IsRunning || s.EndTime == nil {
		return s.TimeLeftSeconds
	}
	secs := int(s.EndTime.Sub(now).Round(time.Second) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// Expired reports whether a running countdown has reached zero. A
// running record with no EndTime breaks the invariant and is reported
// as expired so that both discovery paths converge on completion.
func (s *PersistedTimerState) Expired(now time.Time) bool {
	if !s.IsRunning {
		return false
	}
	if s.EndTime == nil {
		return true
	}
	return !s.EndTime.After(now)
}

// CycleCounter tracks focus completions since the last long break. It
// lives in engine memory only; the next mode is always recoverable from
// it plus the current mode.
type CycleCounter struct {
	CompletedFocusSessions int
}

// NextMode returns the mode that follows current without recording a
// completion. A skipped focus interval forfeits credit, so the counter
// is not consulted past the short/long threshold.
func (c *CycleCounter) NextMode(current TimerMode, sessionsBeforeLong int) TimerMode {
	if current.IsBreak() {
		return ModeFocus
	}
	if c.CompletedFocusSessions >= sessionsBeforeLong {
		return ModeLongBreak
	}
	return ModeShortBreak
}

// Advance records a natural focus completion and returns the break mode
// that follows. The counter resets to zero when the long break is
// reached.
func (c *CycleCounter) Advance(sessionsBeforeLong int) TimerMode {
	c.CompletedFocusSessions++
	if c.CompletedFocusSessions >= sessionsBeforeLong {
		c.CompletedFocusSessions = 0
		return ModeLongBreak
	}
	return ModeShortBreak
}
