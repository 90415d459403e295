package health

import "errors"

var (
	// ErrCheckPanicked is reported for a check that panicked instead of returning.
	ErrCheckPanicked = errors.New("health: check panicked")

	// ErrCheckTimeout is reported for a check still running when the probe deadline passed.
	ErrCheckTimeout = errors.New("health: check exceeded probe deadline")
)
