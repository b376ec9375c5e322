package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/taskman/internal/domain"
)

// LogRecord is one entry in the event journal. It is immutable once created.
type LogRecord struct {
	// ID is a unique identifier for this record
	ID uuid.UUID `json:"id"`

	// Timestamp is the local time the event was logged, "YYYY-MM-DD HH:MM:SS"
	Timestamp string `json:"timestamp"`

	// Message is the human-readable description of what happened
	Message string `json:"message"`
}

// NewLogRecord creates a LogRecord for message stamped with at.
func NewLogRecord(at time.Time, message string) LogRecord {
	return LogRecord{
		ID:        uuid.New(),
		Timestamp: domain.FormatTimestamp(at),
		Message:   message,
	}
}

// EventLogger defines an interface for components that can record events.
// Implementations must not block the caller on I/O.
type EventLogger interface {
	// LogEvent records message with the current time.
	LogEvent(message string)
}
