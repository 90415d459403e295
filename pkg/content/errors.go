package content

import "errors"

var (
	// ErrNotFound is returned by a Source when the requested location does not exist.
	ErrNotFound = errors.New("content: not found")

	// ErrTooLarge is returned when a source file exceeds the loader's size limit.
	ErrTooLarge = errors.New("content: file exceeds size limit")

	// ErrInvalidBaseURL is returned by NewHTTPSource for an unusable base URL.
	ErrInvalidBaseURL = errors.New("content: invalid base url")
)
