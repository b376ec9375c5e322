package events

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func messages(records []LogRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Message)
	}
	return out
}

func TestEventLog_FlushesEverythingBeforeStop(t *testing.T) {
	fsys := afero.NewMemMapFs()
	log := NewEventLog(fsys, "events.log", testLogger())
	require.NoError(t, log.Start())
	assert.True(t, log.Running())

	var want []string
	for i := 0; i < 50; i++ {
		msg := fmt.Sprintf("event %d", i)
		want = append(want, msg)
		log.LogEvent(msg)
	}
	log.Stop()
	assert.False(t, log.Running())

	records, err := ReadLog(fsys, "events.log")
	require.NoError(t, err)
	assert.Equal(t, want, messages(records), "every record, in enqueue order")
}

func TestEventLog_AppendsAcrossSessions(t *testing.T) {
	fsys := afero.NewMemMapFs()

	first := NewEventLog(fsys, "events.log", testLogger())
	require.NoError(t, first.Start())
	first.LogEvent("session one")
	first.Stop()

	second := NewEventLog(fsys, "events.log", testLogger())
	require.NoError(t, second.Start())
	second.LogEvent("session two")
	second.Stop()

	records, err := ReadLog(fsys, "events.log")
	require.NoError(t, err)
	assert.Equal(t, []string{"session one", "session two"}, messages(records))
}

func TestEventLog_DrainsWhileRunning(t *testing.T) {
	fsys := afero.NewMemMapFs()
	log := NewEventLog(fsys, "events.log", testLogger())
	require.NoError(t, log.Start())
	defer log.Stop()

	log.LogEvent("early")

	require.Eventually(t, func() bool {
		data, err := afero.ReadFile(fsys, "events.log")
		return err == nil && len(data) > 0
	}, time.Second, 5*time.Millisecond, "drain loop writes without waiting for stop")
}

func TestEventLog_ConcurrentWriters(t *testing.T) {
	fsys := afero.NewMemMapFs()
	log := NewEventLog(fsys, "events.log", testLogger())
	require.NoError(t, log.Start())

	const writers, perWriter = 5, 40
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				log.LogEvent(fmt.Sprintf("w%d-%03d", id, i))
			}
		}(w)
	}
	wg.Wait()
	log.Stop()

	records, err := ReadLog(fsys, "events.log")
	require.NoError(t, err)
	require.Len(t, records, writers*perWriter)

	// per-writer order is preserved
	last := map[string]string{}
	for _, r := range records {
		writer := r.Message[:2]
		assert.Greater(t, r.Message, last[writer])
		last[writer] = r.Message
	}
}

func TestEventLog_StopIsIdempotent(t *testing.T) {
	log := NewEventLog(afero.NewMemMapFs(), "events.log", testLogger())
	require.NoError(t, log.Start())
	require.NoError(t, log.Start(), "second start is a no-op")

	log.Stop()

	done := make(chan struct{})
	go func() {
		log.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second Stop did not return promptly")
	}

	assert.ErrorIs(t, log.Start(), ErrLogClosed)
}

func TestEventLog_EventsAfterStopAreDropped(t *testing.T) {
	fsys := afero.NewMemMapFs()
	log := NewEventLog(fsys, "events.log", testLogger())
	require.NoError(t, log.Start())
	log.LogEvent("kept")
	log.Stop()
	log.LogEvent("late")

	records, err := ReadLog(fsys, "events.log")
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, messages(records))
}

func TestEventLog_OpenFailureIsFatalToTheLog(t *testing.T) {
	fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())
	log := NewEventLog(fsys, "events.log", testLogger())

	err := log.Start()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrLogClosed))
	assert.False(t, log.Running())

	// callers are never blocked or panicked by a dead log
	log.LogEvent("ignored")
	log.Stop()
	log.Stop()
}

func TestReadLog_Missing(t *testing.T) {
	records, err := ReadLog(afero.NewMemMapFs(), "missing.log")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadLog_Corrupt(t *testing.T) {
	fsys := afero.NewMemMapFs()
	content := `{"id":"00000000-0000-0000-0000-000000000001","timestamp":"2026-01-01 00:00:00","message":"ok"}` + "\n{oops\n"
	require.NoError(t, afero.WriteFile(fsys, "events.log", []byte(content), os.FileMode(0o644)))

	records, err := ReadLog(fsys, "events.log")
	assert.Error(t, err)
	assert.Equal(t, []string{"ok"}, messages(records))
}
