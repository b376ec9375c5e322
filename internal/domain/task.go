package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Priority ranks how urgent a task is. Higher values sort first.
type Priority int

// Possible priority values, persisted as their integer rank.
const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// UpcomingWindow is the default look-ahead used for "upcoming" deadlines.
const UpcomingWindow = 48 * time.Hour

// String returns the human-readable priority name.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// ParsePriority converts "0", "1" or "2" into a Priority.
func ParsePriority(s string) (Priority, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPriority, s)
	}
	p := Priority(n)
	if !p.Valid() {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidPriority, n)
	}
	return p, nil
}

// Task is a single tracked item. Its identity is its position in the
// store, so it carries no ID of its own.
type Task struct {
	Title       string
	Description string
	Deadline    time.Time
	Priority    Priority
	Tag         string
	Completed   bool
}

// NewTask creates an incomplete Task and validates it.
func NewTask(title, description string, deadline time.Time, priority Priority, tag string) (Task, error) {
	t := Task{
		Title:       title,
		Description: description,
		Deadline:    deadline,
		Priority:    priority,
		Tag:         tag,
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Validate checks if the Task has valid data.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// IsOverdue reports whether the deadline has passed and the task is still open.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.Deadline.Before(now)
}

// IsUpcoming reports whether the task is open and due within window of now.
func (t Task) IsUpcoming(now time.Time, window time.Duration) bool {
	if t.Completed {
		return false
	}
	return !t.Deadline.Before(now) && !t.Deadline.After(now.Add(window))
}
