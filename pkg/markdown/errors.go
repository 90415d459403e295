package markdown

import "errors"

// ErrRenderFailed is returned when markdown conversion fails.
var ErrRenderFailed = errors.New("markdown: render failed")
