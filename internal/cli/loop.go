package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/taskman/internal/console"
	"github.com/phrazzld/taskman/internal/domain"
	"github.com/phrazzld/taskman/internal/events"
	"github.com/phrazzld/taskman/internal/store"
)

// TaskFile persists the task list.
type TaskFile interface {
	Load() ([]domain.Task, error)
	Save(tasks []domain.Task) error
	Path() string
}

// Toggler is a background worker the user can switch on and off.
type Toggler interface {
	Running() bool
	Start()
	Stop()
}

// History reads back the event journal.
type History interface {
	History() ([]events.LogRecord, error)
}

// Deps are the collaborators of a Loop. History is optional.
type Deps struct {
	Input    *LineReader
	Gate     *console.Gate
	Tasks    *store.TaskStore
	File     TaskFile
	Events   events.EventLogger
	History  History
	Reminder Toggler
	Logger   *slog.Logger
	// OnReady runs once the greeting is on screen, before the first prompt
	OnReady func()
	// Now overrides the clock, for tests
	Now func() time.Time
}

// command is one entry of the command table. label names the command in
// event records, e.g. "Delete cancelled".
type command struct {
	name  string
	label string
	help  string
	run   func(l *Loop, p *prompter) error
}

// Loop reads commands and runs them one console turn at a time.
type Loop struct {
	in       *LineReader
	gate     *console.Gate
	tasks    *store.TaskStore
	file     TaskFile
	events   events.EventLogger
	history  History
	reminder Toggler
	logger   *slog.Logger
	onReady  func()
	now      func() time.Time

	commands []command
	byName   map[string]command
}

// NewLoop creates a Loop over deps.
func NewLoop(deps Deps) *Loop {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	l := &Loop{
		in:       deps.Input,
		gate:     deps.Gate,
		tasks:    deps.Tasks,
		file:     deps.File,
		events:   deps.Events,
		history:  deps.History,
		reminder: deps.Reminder,
		logger:   deps.Logger.With("component", "cli"),
		onReady:  deps.OnReady,
		now:      deps.Now,
		commands: commandTable(),
	}
	l.byName = make(map[string]command, len(l.commands))
	for _, c := range l.commands {
		l.byName[c.name] = c
	}
	return l
}

// Run greets the user and processes commands until exit, end of input or
// cancellation of ctx. In every case the task list is saved before Run
// returns.
func (l *Loop) Run(ctx context.Context) error {
	err := l.gate.Do(ctx, func(t *console.Turn) error {
		t.Heading("Task Manager CLI started!")
		t.Println("Type 'help' to see available commands.")
		t.Println()
		return nil
	})
	if err == nil && l.onReady != nil {
		l.onReady()
	}

	for err == nil {
		err = l.step(ctx)
	}

	if errors.Is(err, errExit) {
		return nil
	}

	l.logger.Info("command loop ending", "reason", err)
	l.finalSave(context.WithoutCancel(ctx))
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// step prompts, reads one line outside the gate and dispatches it.
func (l *Loop) step(ctx context.Context) error {
	if err := l.gate.Do(ctx, func(t *console.Turn) error {
		t.Prompt("> ")
		return nil
	}); err != nil {
		return err
	}

	line, err := l.in.ReadLine(ctx)
	if err != nil {
		return err
	}

	name := Normalize(line)
	if name == "" {
		return nil
	}
	return l.Dispatch(ctx, name)
}

// Dispatch runs the named command in one console turn. Errors the user can
// recover from are reported inside the turn and not returned; end of input,
// cancellation and exit are.
func (l *Loop) Dispatch(ctx context.Context, name string) error {
	cmd, ok := l.byName[name]
	return l.gate.Do(ctx, func(t *console.Turn) error {
		if !ok {
			t.Warn("Unknown command: '%s'. Type 'help' for a list of commands.", name)
			return nil
		}
		p := &prompter{ctx: ctx, in: l.in, t: t}
		return l.report(t, cmd, cmd.run(l, p))
	})
}

func (l *Loop) report(t *console.Turn, cmd command, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errExit), errors.Is(err, io.EOF),
		errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, ErrCancelled):
		t.Warn("%s cancelled.", cmd.label)
		l.events.LogEvent(cmd.label + " cancelled")
		return nil
	case store.IsNotFoundError(err):
		t.Warn("Invalid index! Task not found.")
		l.events.LogEvent(fmt.Sprintf("%s failed: invalid task index", cmd.label))
		return nil
	case errors.Is(err, errInvalidChoice):
		t.Warn("%v", err)
		return nil
	default:
		t.Error("%s failed: %v", cmd.label, err)
		l.logger.Error("command failed", "command", cmd.name, "error", err)
		l.events.LogEvent(fmt.Sprintf("%s failed: %v", cmd.label, err))
		return nil
	}
}

// finalSave persists the list when the loop ends without an explicit exit.
func (l *Loop) finalSave(ctx context.Context) {
	err := l.gate.Do(ctx, func(t *console.Turn) error {
		t.Println()
		return l.save(t)
	})
	if err != nil {
		l.logger.Error("final save failed", "error", err)
	}
}
