package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// ErrLogClosed is returned by Start after the log has been stopped.
var ErrLogClosed = errors.New("event log is closed")

// EventLog is an asynchronous, append-only event journal. Records are queued
// by LogEvent and written by a single drain goroutine, one batch per wake-up.
type EventLog struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
	now    func() time.Time

	// notify carries at most one pending wake-up for the drain loop
	notify chan struct{}

	mu      sync.Mutex
	queue   []LogRecord
	running bool
	closed  bool
	stop    chan struct{}
	done    chan struct{}
	dropped int
}

// NewEventLog creates an EventLog appending to path on fsys. Nothing is
// opened until Start.
func NewEventLog(fsys afero.Fs, path string, logger *slog.Logger) *EventLog {
	return &EventLog{
		fs:     fsys,
		path:   path,
		logger: logger.With("component", "event_log", "path", path),
		now:    time.Now,
		notify: make(chan struct{}, 1),
	}
}

// Start opens the destination and launches the drain goroutine. Failing to
// open the destination is fatal to the log: the error is returned, nothing
// is drained, and the rest of the program carries on. Starting a running
// log is a no-op.
func (l *EventLog) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrLogClosed
	}
	if l.running {
		return nil
	}

	f, err := l.fs.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		l.closed = true
		l.queue = nil
		l.logger.Error("failed to open event log, event logging disabled", "error", err)
		return fmt.Errorf("failed to open event log %s: %w", l.path, err)
	}

	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	l.running = true
	go l.drain(f, l.stop, l.done)

	l.logger.Debug("event log started")
	return nil
}

// LogEvent queues message and returns immediately.
func (l *EventLog) LogEvent(message string) {
	rec := NewLogRecord(l.now(), message)

	l.mu.Lock()
	if l.closed {
		l.dropped++
		dropped := l.dropped
		l.mu.Unlock()
		l.logger.Debug("event logged after stop, dropped", "message", message, "dropped_total", dropped)
		return
	}
	l.queue = append(l.queue, rec)
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
		// a wake-up is already pending; the drain will pick this record up
	}
}

// Stop flushes every record queued before the call and waits for the drain
// goroutine to exit. Calling Stop more than once is safe.
func (l *EventLog) Stop() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	if !l.running {
		pending := len(l.queue)
		l.queue = nil
		l.mu.Unlock()
		if pending > 0 {
			l.logger.Warn("event log never started, discarding queued events", "count", pending)
		}
		return
	}
	l.running = false
	stop, done := l.stop, l.done
	l.mu.Unlock()

	close(stop)
	<-done
	l.logger.Debug("event log stopped")
}

// Running reports whether the drain goroutine is active.
func (l *EventLog) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *EventLog) drain(f afero.File, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer func() {
		if err := f.Close(); err != nil {
			l.logger.Error("failed to close event log", "error", err)
		}
	}()

	for {
		select {
		case <-l.notify:
			l.flush(f)
		case <-stop:
			l.flush(f)
			return
		}
	}
}

// flush swaps out the whole queue and writes it as one batch.
func (l *EventLog) flush(f afero.File) {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	l.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, rec := range batch {
		if err := enc.Encode(rec); err != nil {
			l.logger.Error("failed to encode event", "error", err, "event_id", rec.ID)
		}
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		l.logger.Error("failed to write event batch", "error", err, "batch_size", len(batch))
		return
	}
	if err := f.Sync(); err != nil {
		l.logger.Error("failed to sync event log", "error", err)
	}

	l.logger.Debug("event batch flushed", "batch_size", len(batch))
}

// History reads back the records flushed to the destination so far.
func (l *EventLog) History() ([]LogRecord, error) {
	return ReadLog(l.fs, l.path)
}
