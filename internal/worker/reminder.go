package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/taskman/internal/console"
	"github.com/phrazzld/taskman/internal/store"
)

// DefaultReminderInterval is how often the reminder prints.
const DefaultReminderInterval = 60 * time.Second

// ReminderConfig configures the reminder worker.
type ReminderConfig struct {
	Interval time.Duration
	// Now overrides the clock, for tests
	Now func() time.Time
}

// Reminder periodically prints upcoming and overdue open tasks. It prints
// once as soon as it starts.
type Reminder struct {
	*Periodic
	gate  *console.Gate
	tasks *store.TaskStore
	now   func() time.Time
}

// NewReminder creates a stopped reminder.
func NewReminder(cfg ReminderConfig, gate *console.Gate, tasks *store.TaskStore, logger *slog.Logger) *Reminder {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultReminderInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	r := &Reminder{gate: gate, tasks: tasks, now: cfg.Now}
	r.Periodic = New(Config{
		Name:      "reminder",
		Interval:  cfg.Interval,
		Immediate: true,
	}, r.remind, logger)
	return r
}

func (r *Reminder) remind(ctx context.Context) error {
	return r.gate.Do(ctx, func(t *console.Turn) error {
		now := r.now()
		t.Println()
		t.Label(console.LabelReminder, "Upcoming deadlines:")
		t.Entries(r.tasks.Upcoming(now), "No upcoming tasks in the next 48 hours.")
		t.Label(console.LabelReminder, "Overdue tasks:")
		t.Entries(r.tasks.Overdue(now), "No overdue tasks.")
		t.Println()
		return nil
	})
}
