package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"

	"github.com/phrazzld/taskman/internal/domain"
)

// ErrMalformed is returned when the task file exists but cannot be decoded
// into valid tasks. No tasks are returned alongside it.
var ErrMalformed = errors.New("malformed task file")

// taskRecord is the on-disk shape of a task. Pointer fields let the
// validator tell a missing key from a zero value.
type taskRecord struct {
	Title       *string `json:"title" validate:"required"`
	Description *string `json:"description" validate:"required"`
	Deadline    *string `json:"deadline" validate:"required"`
	Priority    *int    `json:"priority" validate:"required,min=0,max=2"`
	Tag         *string `json:"tag" validate:"required"`
	Completed   bool    `json:"completed"`
}

// TaskFile reads and writes one JSON task file.
type TaskFile struct {
	fs       afero.Fs
	path     string
	validate *validator.Validate
	logger   *slog.Logger
}

// NewTaskFile creates a TaskFile for path on fsys.
func NewTaskFile(fsys afero.Fs, path string, logger *slog.Logger) *TaskFile {
	return &TaskFile{
		fs:       fsys,
		path:     path,
		validate: validator.New(),
		logger:   logger.With("component", "task_file", "path", path),
	}
}

// Path returns the file location.
func (f *TaskFile) Path() string {
	return f.path
}

// Load reads every task from the file. A missing file yields an empty list
// and no error.
func (f *TaskFile) Load() ([]domain.Task, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			f.logger.Debug("task file not found, starting empty")
			return []domain.Task{}, nil
		}
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}

	var records []taskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	tasks := make([]domain.Task, 0, len(records))
	for i, rec := range records {
		t, err := f.toTask(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: task %d: %v", ErrMalformed, i, err)
		}
		tasks = append(tasks, t)
	}

	f.logger.Debug("tasks loaded", "count", len(tasks))
	return tasks, nil
}

// Save writes tasks as a JSON array with 4-space indentation.
func (f *TaskFile) Save(tasks []domain.Task) error {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, fromTask(t))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := f.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create task file directory: %w", err)
	}

	tmp, err := afero.TempFile(f.fs, dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = f.fs.Remove(tmpName)
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = f.fs.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := f.fs.Rename(tmpName, f.path); err != nil {
		_ = f.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace task file: %w", err)
	}

	f.logger.Debug("tasks saved", "count", len(tasks))
	return nil
}

func (f *TaskFile) toTask(rec taskRecord) (domain.Task, error) {
	if err := f.validate.Struct(rec); err != nil {
		return domain.Task{}, err
	}

	deadline, err := domain.ParseDeadline(*rec.Deadline)
	if err != nil {
		return domain.Task{}, err
	}

	t := domain.Task{
		Title:       *rec.Title,
		Description: *rec.Description,
		Deadline:    deadline,
		Priority:    domain.Priority(*rec.Priority),
		Tag:         *rec.Tag,
		Completed:   rec.Completed,
	}
	if err := t.Validate(); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func fromTask(t domain.Task) taskRecord {
	deadline := domain.FormatDeadline(t.Deadline)
	priority := int(t.Priority)
	return taskRecord{
		Title:       &t.Title,
		Description: &t.Description,
		Deadline:    &deadline,
		Priority:    &priority,
		Tag:         &t.Tag,
		Completed:   t.Completed,
	}
}
