package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/taskman/internal/activity"
	"github.com/phrazzld/taskman/internal/cli"
	"github.com/phrazzld/taskman/internal/config"
	"github.com/phrazzld/taskman/internal/console"
	"github.com/phrazzld/taskman/internal/events"
	"github.com/phrazzld/taskman/internal/platform/jsonfile"
	"github.com/phrazzld/taskman/internal/platform/logger"
	"github.com/phrazzld/taskman/internal/store"
	"github.com/phrazzld/taskman/internal/worker"
)

// application owns every long-lived component of a session.
type application struct {
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	errOut    io.Writer

	journal  *events.EventLog
	reminder *worker.Reminder
	hint     *worker.Hint
	autosave *worker.AutoSave
	loop     *cli.Loop
}

// newApplication wires the components and loads the task file. A malformed
// task file stops startup so autosave cannot overwrite it.
func newApplication(cfg *config.Config, fsys afero.Fs, in io.Reader, out, errOut io.Writer) (*application, error) {
	log, closer, err := logger.Setup(cfg.Log, fsys, errOut)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"tasks_file", cfg.Storage.TasksFile,
		"log_file", cfg.Storage.LogFile,
		"log_level", cfg.Log.Level)

	file := jsonfile.NewTaskFile(fsys, cfg.Storage.TasksFile, log)
	loaded, err := file.Load()
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	tasks := store.NewTaskStore(cfg.Workers.UpcomingWindow)
	tasks.Replace(loaded)

	gate := console.NewGate(out)
	clock := activity.NewClock()
	journal := events.NewEventLog(fsys, cfg.Storage.LogFile, log)

	reminder := worker.NewReminder(worker.ReminderConfig{
		Interval: cfg.Workers.ReminderInterval,
	}, gate, tasks, log)
	hint := worker.NewHint(worker.HintConfig{
		Interval:      cfg.Workers.HintInterval,
		IdleThreshold: cfg.Workers.IdleThreshold,
	}, gate, tasks, clock, log)
	autosave := worker.NewAutoSave(worker.AutoSaveConfig{
		Interval: cfg.Workers.AutoSaveInterval,
	}, gate, tasks, file, journal, log)

	app := &application{
		cfg:       cfg,
		logger:    log,
		logCloser: closer,
		errOut:    errOut,
		journal:   journal,
		reminder:  reminder,
		hint:      hint,
		autosave:  autosave,
	}
	app.loop = cli.NewLoop(cli.Deps{
		Input:    cli.NewLineReader(in, clock),
		Gate:     gate,
		Tasks:    tasks,
		File:     file,
		Events:   journal,
		History:  journal,
		Reminder: reminder,
		Logger:   log,
		OnReady:  app.startWorkers,
	})
	return app, nil
}

// run starts the journal, runs the command loop until it ends and then
// shuts everything down. The periodic workers start once the loop has
// greeted the user.
func (a *application) run(ctx context.Context) error {
	if err := a.journal.Start(); err != nil {
		fmt.Fprintf(a.errOut, "Activity log unavailable: %v\n", err)
	}
	a.journal.LogEvent("Session started")

	err := a.loop.Run(ctx)
	a.shutdown()
	return err
}

func (a *application) startWorkers() {
	if a.cfg.Workers.ReminderEnabled {
		a.reminder.Start()
	}
	a.hint.Start()
	a.autosave.Start()
}

// shutdown stops the workers concurrently, then the journal so that events
// logged while workers stop are still written.
func (a *application) shutdown() {
	var g errgroup.Group
	for _, w := range []*worker.Periodic{a.reminder.Periodic, a.hint.Periodic, a.autosave.Periodic} {
		g.Go(func() error {
			w.Stop()
			return nil
		})
	}
	_ = g.Wait()

	a.journal.Stop()
	a.logger.Info("shutdown complete")
	if err := a.logCloser.Close(); err != nil {
		fmt.Fprintf(a.errOut, "closing log file: %v\n", err)
	}
}
