// Package config provides configuration management for MakeIt.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/ronak-kumar-sing/makeit/internal/domain"
)

// Config holds all configuration for the MakeIt application.
type Config struct {
	Timer         TimerConfig        `mapstructure:"timer"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Tasks         TasksConfig        `mapstructure:"tasks"`
	Background    BackgroundConfig   `mapstructure:"background"`
	Storage       StorageConfig      `mapstructure:"storage"`
}

// TimerConfig holds countdown settings.
type TimerConfig struct {
	FocusDuration      Duration `mapstructure:"focus_duration"`
	ShortBreak         Duration `mapstructure:"short_break"`
	LongBreak          Duration `mapstructure:"long_break"`
	SessionsBeforeLong int      `mapstructure:"sessions_before_long"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// TasksConfig holds task progress settings.
type TasksConfig struct {
	ProgressPerSession int `mapstructure:"progress_per_session"`
}

// BackgroundConfig holds background refresh settings.
type BackgroundConfig struct {
	RefreshInterval Duration `mapstructure:"refresh_interval"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			FocusDuration:      Duration(25 * time.Minute),
			ShortBreak:         Duration(5 * time.Minute),
			LongBreak:          Duration(15 * time.Minute),
			SessionsBeforeLong: 4,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Tasks: TasksConfig{
			ProgressPerSession: 20,
		},
		Background: BackgroundConfig{
			RefreshInterval: Duration(time.Minute),
		},
		Storage: StorageConfig{
			DataDir: "~/.makeit",
		},
	}
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	// Set defaults
	setDefaults()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.makeit" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".makeit")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	// Set all values
	viper.Set("timer.focus_duration", cfg.Timer.FocusDuration.String())
	viper.Set("timer.short_break", cfg.Timer.ShortBreak.String())
	viper.Set("timer.long_break", cfg.Timer.LongBreak.String())
	viper.Set("timer.sessions_before_long", cfg.Timer.SessionsBeforeLong)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("tasks.progress_per_session", cfg.Tasks.ProgressPerSession)
	viper.Set("background.refresh_interval", cfg.Background.RefreshInterval.String())
	viper.Set("storage.data_dir", cfg.Storage.DataDir)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".makeit", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "makeit.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("timer.focus_duration", "25m")
	viper.SetDefault("timer.short_break", "5m")
	viper.SetDefault("timer.long_break", "15m")
	viper.SetDefault("timer.sessions_before_long", 4)
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", true)
	viper.SetDefault("tasks.progress_per_session", 20)
	viper.SetDefault("background.refresh_interval", "1m0s")
	viper.SetDefault("storage.data_dir", "~/.makeit")
}

// ToTimerConfig converts the config to the domain timer configuration.
func (c *Config) ToTimerConfig() domain.TimerConfig {
	cfg := domain.TimerConfig{
		FocusDuration:      time.Duration(c.Timer.FocusDuration),
		ShortBreakDuration: time.Duration(c.Timer.ShortBreak),
		LongBreakDuration:  time.Duration(c.Timer.LongBreak),
		SessionsBeforeLong: c.Timer.SessionsBeforeLong,
	}
	defaults := domain.DefaultTimerConfig()
	if cfg.FocusDuration <= 0 {
		cfg.FocusDuration = defaults.FocusDuration
	}
	if cfg.ShortBreakDuration <= 0 {
		cfg.ShortBreakDuration = defaults.ShortBreakDuration
	}
	if cfg.LongBreakDuration <= 0 {
		cfg.LongBreakDuration = defaults.LongBreakDuration
	}
	if cfg.SessionsBeforeLong <= 0 {
		cfg.SessionsBeforeLong = defaults.SessionsBeforeLong
	}
	return cfg
}
