package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "TASKMAN"

// Options tells Load where to look beyond the defaults.
type Options struct {
	// ConfigFile is an explicit YAML file; it must exist when set
	ConfigFile string
	// SearchDir is where taskman.yaml is looked up when ConfigFile is empty
	SearchDir string
	// Flags are bound to their keys; only flags the user set take effect
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"tasks-file": "storage.tasks_file",
	"log-file":   "storage.log_file",
	"log-level":  "log.level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.tasks_file", "tasks.json")
	v.SetDefault("storage.log_file", "events.log")
	v.SetDefault("workers.reminder_interval", "60s")
	v.SetDefault("workers.hint_interval", "30s")
	v.SetDefault("workers.idle_threshold", "2m")
	v.SetDefault("workers.autosave_interval", "2m")
	v.SetDefault("workers.upcoming_window", "48h")
	v.SetDefault("workers.reminder_enabled", true)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
}

// Load builds the configuration. Precedence, lowest first: defaults, YAML
// file, TASKMAN_ environment variables, flags.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	} else {
		dir := opts.SearchDir
		if dir == "" {
			dir = "."
		}
		v.SetConfigName("taskman")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("error binding flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
