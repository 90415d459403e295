package termview

import "errors"

// ErrConvertFailed is recorded when rendered HTML cannot be turned into markdown.
var ErrConvertFailed = errors.New("termview: html conversion failed")
