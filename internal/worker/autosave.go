package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskman/internal/console"
	"github.com/phrazzld/taskman/internal/domain"
	"github.com/phrazzld/taskman/internal/events"
	"github.com/phrazzld/taskman/internal/store"
)

// DefaultAutoSaveInterval is how often tasks are persisted in the background.
const DefaultAutoSaveInterval = 2 * time.Minute

// Saver persists the full task list.
type Saver interface {
	Save(tasks []domain.Task) error
}

// AutoSaveConfig configures the autosave worker.
type AutoSaveConfig struct {
	Interval time.Duration
}

// AutoSave periodically persists the task list under the console gate and
// prints a short confirmation.
type AutoSave struct {
	*Periodic
	gate   *console.Gate
	tasks  *store.TaskStore
	saver  Saver
	events events.EventLogger
	logger *slog.Logger
}

// NewAutoSave creates a stopped autosave worker.
func NewAutoSave(cfg AutoSaveConfig, gate *console.Gate, tasks *store.TaskStore, saver Saver, ev events.EventLogger, logger *slog.Logger) *AutoSave {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultAutoSaveInterval
	}

	a := &AutoSave{
		gate:   gate,
		tasks:  tasks,
		saver:  saver,
		events: ev,
		logger: logger.With("component", "autosave"),
	}
	a.Periodic = New(Config{
		Name:     "autosave",
		Interval: cfg.Interval,
	}, a.save, logger)
	return a
}

func (a *AutoSave) save(ctx context.Context) error {
	return a.gate.Do(ctx, func(t *console.Turn) error {
		tasks := a.tasks.List()
		if err := a.saver.Save(tasks); err != nil {
			t.Error("[AutoSave] Autosave failed: %v", err)
			a.events.LogEvent(fmt.Sprintf("Autosave failed: %v", err))
			return fmt.Errorf("autosave: %w", err)
		}
		t.Label(console.LabelAutoSave, fmt.Sprintf("Autosaved %d tasks.", len(tasks)))
		a.logger.Debug("tasks autosaved", "count", len(tasks))
		a.events.LogEvent(fmt.Sprintf("Autosaved %d tasks", len(tasks)))
		return nil
	})
}
