package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// UnitFunc performs one unit of periodic work. ctx is cancelled when the
// worker is stopped, so blocking calls inside the unit should honour it.
type UnitFunc func(ctx context.Context) error

// Config holds the scheduling options of a Periodic.
type Config struct {
	// Name identifies the worker in logs
	Name string

	// Interval is the wait between units
	// If zero or negative, defaults to one minute
	Interval time.Duration

	// Immediate runs the first unit as soon as the worker starts instead of
	// after the first interval
	Immediate bool
}

// Periodic is a background loop with a Stopped/Running lifecycle.
// Starting a running worker or stopping a stopped one is a no-op.
type Periodic struct {
	config Config
	unit   UnitFunc
	logger *slog.Logger

	// lifecycle serializes Start and Stop; Stop holds it until the loop exits
	lifecycle sync.Mutex

	// mu guards cancel and done, which are non-nil while running
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a stopped Periodic.
func New(config Config, unit UnitFunc, logger *slog.Logger) *Periodic {
	if config.Interval <= 0 {
		logger.Warn("invalid worker interval specified, using default",
			"worker", config.Name,
			"specified_interval", config.Interval,
			"default_interval", time.Minute)
		config.Interval = time.Minute
	}

	return &Periodic{
		config: config,
		unit:   unit,
		logger: logger.With("component", "worker", "worker", config.Name),
	}
}

// Name returns the configured worker name.
func (p *Periodic) Name() string {
	return p.config.Name
}

// Interval returns the wait between units.
func (p *Periodic) Interval() time.Duration {
	return p.config.Interval
}

// Start launches the loop if the worker is stopped.
func (p *Periodic) Start() {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx, p.done)
	p.logger.Debug("worker started", "interval", p.config.Interval)
}

// Stop cancels the loop and waits for it to exit. The wait is bounded by the
// unit in flight, not by the remaining interval. The worker reports Running
// until the loop has exited, and a concurrent Start waits for Stop to finish.
func (p *Periodic) Stop() {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.mu.Unlock()
	if cancel == nil {
		return
	}

	// mu is not held while waiting so a unit may still call Running
	cancel()
	<-done

	p.mu.Lock()
	p.cancel, p.done = nil, nil
	p.mu.Unlock()
	p.logger.Debug("worker stopped")
}

// Running reports whether the loop is active.
func (p *Periodic) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *Periodic) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	if p.config.Immediate {
		p.runUnit(ctx)
	}

	timer := time.NewTimer(p.config.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if ctx.Err() != nil {
			return
		}
		p.runUnit(ctx)
		if ctx.Err() != nil {
			return
		}

		timer.Reset(p.config.Interval)
	}
}

func (p *Periodic) runUnit(ctx context.Context) {
	err := p.unit(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		p.logger.Debug("unit interrupted by stop")
	default:
		p.logger.Error("worker unit failed", "error", err)
	}
}
