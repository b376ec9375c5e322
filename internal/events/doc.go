// Package events records a journal of user-visible activity.
//
// Callers describe what happened through the EventLogger interface without
// knowing how records are stored. EventLog is the file-backed implementation:
// LogEvent only appends to an in-memory queue, and a dedicated goroutine
// drains the queue in batches, writing each batch as newline-delimited JSON.
//
// The primary components are:
// - LogRecord: one timestamped message
// - EventLogger: interface for components that record events
// - EventLog: the queue-backed, batching file logger
package events
