package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskman/internal/config"
	"github.com/phrazzld/taskman/internal/events"
	"github.com/phrazzld/taskman/internal/platform/jsonfile"
)

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

func testConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{TasksFile: "/data/tasks.json", LogFile: "/data/events.log"},
		Workers: config.WorkersConfig{
			ReminderInterval: time.Hour,
			HintInterval:     time.Hour,
			IdleThreshold:    time.Hour,
			AutoSaveInterval: time.Hour,
			UpcomingWindow:   48 * time.Hour,
			ReminderEnabled:  true,
		},
		Log: config.LogConfig{Level: "error"},
	}
}

func keepDefaultLogger(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestApplication_Session(t *testing.T) {
	keepDefaultLogger(t)
	fs := afero.NewMemMapFs()
	deadline := time.Now().Add(time.Hour).Format("2006-01-02 15:04")
	input := strings.Join([]string{
		"add", "Write report", "Quarterly numbers", deadline, "2", "work", "no",
		"delete", "cancel",
		"exit",
	}, "\n") + "\n"
	out := &syncBuffer{}

	app, err := newApplication(testConfig(), fs, strings.NewReader(input), out, &syncBuffer{})
	require.NoError(t, err)
	require.NoError(t, app.run(context.Background()))

	text := out.String()
	banner := strings.Index(text, "Task Manager CLI started!")
	reminder := strings.Index(text, "[Reminder] Upcoming deadlines:")
	require.GreaterOrEqual(t, banner, 0)
	require.GreaterOrEqual(t, reminder, 0)
	assert.Less(t, banner, reminder, "workers start after the greeting")
	assert.Contains(t, text, "Task added.")
	assert.Contains(t, text, "Exiting...")
	assert.False(t, app.reminder.Running())
	assert.False(t, app.hint.Running())
	assert.False(t, app.autosave.Running())
	assert.False(t, app.journal.Running())

	saved, err := jsonfile.NewTaskFile(fs, "/data/tasks.json", slog.Default()).Load()
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Write report", saved[0].Title)

	records, err := events.ReadLog(fs, "/data/events.log")
	require.NoError(t, err)
	var messages []string
	for _, r := range records {
		messages = append(messages, r.Message)
	}
	assert.Equal(t, []string{
		"Session started",
		"Task added: Write report",
		"Delete cancelled",
		"Saved 1 tasks to /data/tasks.json",
		"Session ended",
	}, messages)
}

func TestApplication_LoadsExistingTasks(t *testing.T) {
	keepDefaultLogger(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/tasks.json", []byte(`[
    {
        "title": "Existing",
        "description": "",
        "deadline": "2030-01-01 09:00:00",
        "priority": 1,
        "tag": "home",
        "completed": false
    }
]`), 0o644))

	cfg := testConfig()
	cfg.Workers.ReminderEnabled = false
	out := &syncBuffer{}
	app, err := newApplication(cfg, fs, strings.NewReader("list\nexit\n"), out, &syncBuffer{})
	require.NoError(t, err)
	require.NoError(t, app.run(context.Background()))

	assert.Contains(t, out.String(), "[0] Title: Existing")
	assert.NotContains(t, out.String(), "[Reminder]")
}

func TestApplication_MalformedTaskFileStopsStartup(t *testing.T) {
	keepDefaultLogger(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/tasks.json", []byte(`{not json`), 0o644))

	_, err := newApplication(testConfig(), fs, strings.NewReader(""), &syncBuffer{}, &syncBuffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, jsonfile.ErrMalformed)
}

func TestApplication_UnwritableJournalIsNotFatal(t *testing.T) {
	keepDefaultLogger(t)
	base := afero.NewMemMapFs()
	fs := afero.NewReadOnlyFs(base)
	errOut := &syncBuffer{}

	cfg := testConfig()
	cfg.Workers.ReminderEnabled = false
	app, err := newApplication(cfg, fs, strings.NewReader("list\nexit\n"), &syncBuffer{}, errOut)
	require.NoError(t, err)
	require.NoError(t, app.run(context.Background()))

	assert.Contains(t, errOut.String(), "Activity log unavailable")
}

func TestApplication_EndOfInputShutsDown(t *testing.T) {
	keepDefaultLogger(t)
	fs := afero.NewMemMapFs()

	app, err := newApplication(testConfig(), fs, strings.NewReader(""), &syncBuffer{}, &syncBuffer{})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.run(context.Background()) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return at end of input")
	}

	exists, err := afero.Exists(fs, "/data/tasks.json")
	require.NoError(t, err)
	assert.True(t, exists, "tasks are saved on the way out")
}

func TestRootCommand_Version(t *testing.T) {
	cmd := newRootCmd()
	out := &syncBuffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "taskman dev\n", out.String())
}

func TestRootCommand_RunsSession(t *testing.T) {
	keepDefaultLogger(t)
	dir := t.TempDir()
	tasksFile := filepath.Join(dir, "tasks.json")

	cmd := newRootCmd()
	out := &syncBuffer{}
	cmd.SetIn(strings.NewReader("exit\n"))
	cmd.SetOut(out)
	cmd.SetErr(&syncBuffer{})
	cmd.SetArgs([]string{
		"--config", writeTestConfig(t, dir),
		"--tasks-file", tasksFile,
		"--log-file", filepath.Join(dir, "events.log"),
		"--log-level", "error",
	})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Exiting...")

	saved, err := jsonfile.NewTaskFile(afero.NewOsFs(), tasksFile, slog.Default()).Load()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestRootCommand_BadConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&syncBuffer{})
	cmd.SetErr(&syncBuffer{})
	cmd.SetArgs([]string{"--log-level", "chatty"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "taskman.yaml")
	require.NoError(t, afero.WriteFile(afero.NewOsFs(), path, []byte("workers:\n  reminder_enabled: false\n"), 0o600))
	return path
}
