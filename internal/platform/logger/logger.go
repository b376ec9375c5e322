package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/phrazzld/taskman/internal/config"
)

// ParseLevel maps a configured level name to a slog level. Unknown names
// report ok=false and fall back to warn.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelWarn, false
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup builds the application logger and installs it as the slog default.
// Records go to cfg.File when set, opened for append on fsys, and to
// fallback otherwise. The returned closer releases the file.
func Setup(cfg config.LogConfig, fsys afero.Fs, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level, ok := ParseLevel(cfg.Level)

	out := fallback
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		f, err := fsys.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.File, err)
		}
		out = f
		closer = f
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	if !ok {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.Level,
			"default_level", "warn")
	}

	slog.SetDefault(logger)
	return logger, closer, nil
}
