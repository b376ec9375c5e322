package domain

import (
	"fmt"
	"strings"
	"time"
)

// Layouts for deadlines and timestamps.
const (
	// DeadlineLayout is the canonical persisted form.
	DeadlineLayout = "2006-01-02 15:04:05"

	// deadlineLayoutT is tolerated on load.
	deadlineLayoutT = "2006-01-02T15:04:05"

	// InputLayout is what the prompts ask users to type.
	InputLayout = "2006-01-02 15:04"

	// DisplayLayout is used when printing tasks.
	DisplayLayout = "2006-01-02 15:04"
)

// FormatDeadline renders t in the canonical persisted layout, local time.
func FormatDeadline(t time.Time) string {
	return t.In(time.Local).Format(DeadlineLayout)
}

// FormatTimestamp renders t the way event log records carry it.
func FormatTimestamp(t time.Time) string {
	return t.In(time.Local).Format(DeadlineLayout)
}

// ParseDeadline parses a persisted deadline in local time. Both the space
// and the "T" separated forms are accepted.
func ParseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DeadlineLayout, deadlineLayoutT} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD HH:MM:SS", ErrInvalidDeadline, s)
}

// ParseInputDeadline parses a deadline typed at a prompt. Seconds are
// optional.
func ParseInputDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(InputLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := ParseDeadline(s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD HH:MM", ErrInvalidDeadline, s)
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// EndOfDay returns the last second of the local day containing t.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Second)
}
