package console

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/semaphore"
)

// Gate grants exclusive use of the console, one Turn at a time. It is not
// reentrant: acquiring it again from inside a Turn blocks forever (or until
// the context is done).
type Gate struct {
	sem    *semaphore.Weighted
	out    io.Writer
	styles *Styles
}

// NewGate creates a gate guarding out.
func NewGate(out io.Writer) *Gate {
	return &Gate{
		sem:    semaphore.NewWeighted(1),
		out:    out,
		styles: NewStyles(out),
	}
}

// Acquire blocks until the gate is free or ctx is done.
func (g *Gate) Acquire(ctx context.Context) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("console gate: %w", err)
	}
	return nil
}

// TryAcquire takes the gate only if it is free right now.
func (g *Gate) TryAcquire() bool {
	return g.sem.TryAcquire(1)
}

// Release frees the gate. It must only be called by the holder.
func (g *Gate) Release() {
	g.sem.Release(1)
}

// Do holds the gate for the whole of fn. It returns the acquisition error if
// ctx ends first, otherwise whatever fn returns.
func (g *Gate) Do(ctx context.Context, fn func(t *Turn) error) error {
	if err := g.Acquire(ctx); err != nil {
		return err
	}
	defer g.Release()
	return fn(&Turn{out: g.out, styles: g.styles})
}
