package dispatch

import "errors"

var (
	// ErrNotRunning is returned by Navigate when the event loop is not running.
	ErrNotRunning = errors.New("dispatch: navigator is not running")

	// ErrAlreadyRunning is returned by Run when called twice.
	ErrAlreadyRunning = errors.New("dispatch: navigator is already running")
)
