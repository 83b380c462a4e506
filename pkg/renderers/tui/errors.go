package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSubmitter is returned when a session starts without a submitter.
	ErrNoSubmitter = errors.New("tui: submitter is required")
)
