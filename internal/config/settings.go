package config

import (
	"github.com/ronak-kumar-sing/makeit/internal/domain"
	"github.com/ronak-kumar-sing/makeit/internal/ports"
)

// Settings adapts a loaded Config to the engine's read-only settings
// port.
type Settings struct {
	cfg *Config
}

var _ ports.Settings = (*Settings)(nil)

// NewSettings wraps the given configuration. A nil config falls back to
// defaults.
func NewSettings(cfg *Config) *Settings {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Settings{cfg: cfg}
}

// TimerConfig returns the configured countdown lengths.
func (s *Settings) TimerConfig() domain.TimerConfig {
	return s.cfg.ToTimerConfig()
}

// NotificationsEnabled reports whether notifications are enabled.
func (s *Settings) NotificationsEnabled() bool {
	return s.cfg.Notifications.Enabled
}

// ProgressPerSession returns the task-progress increment per completed
// focus session.
func (s *Settings) ProgressPerSession() int {
	if s.cfg.Tasks.ProgressPerSession <= 0 {
		return DefaultConfig().Tasks.ProgressPerSession
	}
	return s.cfg.Tasks.ProgressPerSession
}
