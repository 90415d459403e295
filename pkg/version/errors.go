package version

import "errors"

var (
	// ErrNoRecord is returned by a Store that has never been written.
	ErrNoRecord = errors.New("version: no record")

	// ErrUnexpectedStatus is returned when the remote endpoint answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("version: unexpected status code")

	// ErrEmptyVersion is returned when the remote endpoint answers with an empty body.
	ErrEmptyVersion = errors.New("version: empty version")

	// ErrInvalidVersion is returned for a value that is not a single line of text.
	ErrInvalidVersion = errors.New("version: value must be a single line")

	// ErrSaveFailed wraps store write failures.
	ErrSaveFailed = errors.New("version: failed to save record")

	// ErrInvalidSchedule is returned by NewScheduler for an unparsable cron spec.
	ErrInvalidSchedule = errors.New("version: invalid schedule")

	// ErrUnknownStore is returned by Config.NewStore for an unsupported store kind.
	ErrUnknownStore = errors.New("version: unknown store")

	// ErrNoRedisClient is returned by Config.NewStore when the redis store lacks a client.
	ErrNoRedisClient = errors.New("version: redis store requires a client")
)
