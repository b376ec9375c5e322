// Package logger configures the diagnostic slog logger.
//
// Diagnostics are JSON records written to stderr or to the configured log
// file. They are separate from the console output the user reads and from
// the event log, which is part of the product.
package logger
