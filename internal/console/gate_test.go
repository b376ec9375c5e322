package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskman/internal/domain"
	"github.com/phrazzld/taskman/internal/store"
)

// syncBuffer is a goroutine-safe bytes.Buffer for capturing console output.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestGate_BlocksDoNotInterleave(t *testing.T) {
	out := &syncBuffer{}
	gate := NewGate(out)

	const writers = 4
	const lines = 5

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for round := 0; round < 3; round++ {
				err := gate.Do(context.Background(), func(turn *Turn) error {
					for i := 0; i < lines; i++ {
						turn.Printf("w%d line %d\n", id, i)
						time.Sleep(time.Millisecond)
					}
					return nil
				})
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	got := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, got, writers*lines*3)
	for start := 0; start < len(got); start += lines {
		owner := strings.Fields(got[start])[0]
		for i := 0; i < lines; i++ {
			assert.Equal(t, fmt.Sprintf("%s line %d", owner, i), got[start+i], "block starting at %d was interleaved", start)
		}
	}
}

func TestGate_AcquireHonoursContext(t *testing.T) {
	gate := NewGate(&syncBuffer{})
	require.NoError(t, gate.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := gate.Do(ctx, func(*Turn) error {
		t.Fatal("must not run while the gate is held")
		return nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, gate.TryAcquire())

	gate.Release()
	assert.True(t, gate.TryAcquire())
	gate.Release()
}

func TestGate_DoReturnsFnError(t *testing.T) {
	gate := NewGate(&syncBuffer{})
	boom := errors.New("boom")

	err := gate.Do(context.Background(), func(*Turn) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.True(t, gate.TryAcquire(), "gate released after fn error")
	gate.Release()
}

func TestTurn_Rendering(t *testing.T) {
	out := &syncBuffer{}
	gate := NewGate(out)
	task := domain.Task{
		Title:       "Write report",
		Description: "Q3",
		Deadline:    time.Date(2026, 10, 20, 14, 30, 0, 0, time.Local),
		Priority:    domain.PriorityHigh,
		Tag:         "work",
	}

	err := gate.Do(context.Background(), func(turn *Turn) error {
		turn.Label(LabelReminder, "Upcoming deadlines")
		turn.Entries([]store.Entry{{Index: 3, Task: task}}, "none")
		turn.Entries(nil, "No overdue tasks.")
		turn.Tasks(nil, "No matching tasks found.")
		return nil
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "[Reminder] Upcoming deadlines")
	assert.Contains(t, text, "[3] Title: Write report")
	assert.Contains(t, text, "Deadline: 2026-10-20 14:30")
	assert.Contains(t, text, "Priority: High")
	assert.Contains(t, text, "Tag: work")
	assert.Contains(t, text, "Status: open")
	assert.Contains(t, text, "No overdue tasks.")
	assert.Contains(t, text, "No matching tasks found.")
}
