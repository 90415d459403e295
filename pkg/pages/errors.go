package pages

import "errors"

// Sentinel errors returned by registry construction.
var (
	ErrEmptyRegistry   = errors.New("pages: registry has no entries")
	ErrReservedID      = errors.New("pages: identifier is reserved")
	ErrInvalidID       = errors.New("pages: invalid page identifier")
	ErrInvalidLocation = errors.New("pages: invalid source location")
	ErrDecode          = errors.New("pages: failed to decode registry")
)
