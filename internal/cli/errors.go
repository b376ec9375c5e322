package cli

import "errors"

// CancelToken aborts any multi-step prompt.
const CancelToken = "cancel"

var (
	// ErrCancelled is returned by a prompt when the user types the cancel token.
	ErrCancelled = errors.New("operation cancelled")

	// errExit ends the loop after the exit command has saved.
	errExit = errors.New("exit requested")

	errInvalidYesNo  = errors.New("please answer yes or no")
	errInvalidChoice = errors.New("unknown option")
)
