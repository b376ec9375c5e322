package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskman/internal/console"
	"github.com/phrazzld/taskman/internal/platform/jsonfile"
	"github.com/phrazzld/taskman/internal/store"
)

// fixedNow has zero seconds so typed deadlines compare exactly.
var fixedNow = time.Date(2026, 8, 20, 12, 0, 0, 0, time.Local)

const tasksPath = "/data/tasks.json"

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

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

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingLogger) LogEvent(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *recordingLogger) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

type fakeToggler struct {
	mu      sync.Mutex
	running bool
	starts  int
	stops   int
}

func (f *fakeToggler) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *fakeToggler) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = true
	f.starts++
}

func (f *fakeToggler) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = false
	f.stops++
}

// harness shares one store, task file and event recorder across commands.
type harness struct {
	fs       afero.Fs
	tasks    *store.TaskStore
	file     *jsonfile.TaskFile
	events   *recordingLogger
	reminder *fakeToggler
	history  History
}

func newHarness() *harness {
	fs := afero.NewMemMapFs()
	return &harness{
		fs:       fs,
		tasks:    store.NewTaskStore(0),
		file:     jsonfile.NewTaskFile(fs, tasksPath, setupTestLogger()),
		events:   &recordingLogger{},
		reminder: &fakeToggler{},
	}
}

func (h *harness) loop(input io.Reader, out io.Writer) *Loop {
	return NewLoop(Deps{
		Input:    NewLineReader(input, nil),
		Gate:     console.NewGate(out),
		Tasks:    h.tasks,
		File:     h.file,
		Events:   h.events,
		History:  h.history,
		Reminder: h.reminder,
		Logger:   setupTestLogger(),
		Now:      func() time.Time { return fixedNow },
	})
}

// dispatch runs one command, answering its prompts with answers, and
// returns what it printed.
func (h *harness) dispatch(t *testing.T, name string, answers ...string) string {
	t.Helper()
	out := &syncBuffer{}
	input := strings.Join(answers, "\n")
	if len(answers) > 0 {
		input += "\n"
	}
	err := h.loop(strings.NewReader(input), out).Dispatch(context.Background(), name)
	require.NoError(t, err)
	return out.String()
}
