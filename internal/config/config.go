package config

import "time"

// Config holds all application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Workers WorkersConfig `mapstructure:"workers" validate:"required"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
}

// StorageConfig locates the task file and the event log.
type StorageConfig struct {
	TasksFile string `mapstructure:"tasks_file" validate:"required"`
	LogFile   string `mapstructure:"log_file" validate:"required"`
}

// WorkersConfig tunes the background workers.
type WorkersConfig struct {
	ReminderInterval time.Duration `mapstructure:"reminder_interval" validate:"gt=0s"`
	HintInterval     time.Duration `mapstructure:"hint_interval" validate:"gt=0s"`
	IdleThreshold    time.Duration `mapstructure:"idle_threshold" validate:"gt=0s"`
	AutoSaveInterval time.Duration `mapstructure:"autosave_interval" validate:"gt=0s"`
	UpcomingWindow   time.Duration `mapstructure:"upcoming_window" validate:"gt=0s"`
	// ReminderEnabled controls whether the reminder starts with the session
	ReminderEnabled bool `mapstructure:"reminder_enabled"`
}

// LogConfig controls diagnostic logging. An empty File means stderr.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}
