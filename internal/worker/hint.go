package worker

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/phrazzld/taskman/internal/activity"
	"github.com/phrazzld/taskman/internal/console"
	"github.com/phrazzld/taskman/internal/store"
)

// Hint defaults.
const (
	DefaultHintInterval  = 30 * time.Second
	DefaultIdleThreshold = 2 * time.Minute
)

// motivationalMessages is the fixed pool hints pick from.
var motivationalMessages = []string{
	"Remember, consistency is key! Keep going!",
	"Stay focused and you'll reach your goals!",
	"One task at a time, and you'll get there!",
	"Great job so far! Keep pushing!",
	"Don't forget to take breaks and recharge!",
	"Small steps lead to big results!",
}

// HintConfig configures the hint worker.
type HintConfig struct {
	Interval      time.Duration
	IdleThreshold time.Duration
	// Seed drives message selection; zero picks a random seed
	Seed uint64
	// Now overrides the clock used for deadline counts, for tests
	Now func() time.Time
}

// Hint prints task counts and a motivational message once the user has been
// idle for at least the threshold.
type Hint struct {
	*Periodic
	gate      *console.Gate
	tasks     *store.TaskStore
	clock     *activity.Clock
	threshold time.Duration
	rng       *rand.Rand
	now       func() time.Time
}

// NewHint creates a stopped hint worker.
func NewHint(cfg HintConfig, gate *console.Gate, tasks *store.TaskStore, clock *activity.Clock, logger *slog.Logger) *Hint {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultHintInterval
	}
	if cfg.IdleThreshold <= 0 {
		cfg.IdleThreshold = DefaultIdleThreshold
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	h := &Hint{
		gate:      gate,
		tasks:     tasks,
		clock:     clock,
		threshold: cfg.IdleThreshold,
		rng:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		now:       cfg.Now,
	}
	h.Periodic = New(Config{
		Name:     "hint",
		Interval: cfg.Interval,
	}, h.hint, logger)
	return h
}

// Messages returns a copy of the motivational pool.
func Messages() []string {
	return append([]string(nil), motivationalMessages...)
}

func (h *Hint) hint(ctx context.Context) error {
	if h.clock.IdleFor() < h.threshold {
		return nil
	}

	return h.gate.Do(ctx, func(t *console.Turn) error {
		// the user may have typed while this unit waited for the gate
		if h.clock.IdleFor() < h.threshold {
			return nil
		}
		now := h.now()
		overdue := h.tasks.CountOverdue(now)
		upcoming := h.tasks.CountUpcoming(now)

		var parts []string
		if overdue > 0 {
			parts = append(parts, fmt.Sprintf("You have %d overdue tasks.", overdue))
		}
		if upcoming > 0 {
			parts = append(parts, fmt.Sprintf("You have %d upcoming tasks.", upcoming))
		}
		if len(parts) == 0 {
			parts = append(parts, "You are doing great!")
		}

		t.Println()
		t.Label(console.LabelHint, strings.Join(parts, " "))
		t.Println(h.pick())
		t.Println("Type 'help' to see available commands.")
		t.Println()
		return nil
	})
}

// pick is only called from the worker goroutine.
func (h *Hint) pick() string {
	return motivationalMessages[h.rng.IntN(len(motivationalMessages))]
}
