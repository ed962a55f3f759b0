package loader

import "errors"

var (
	// ErrContentRoot indicates the content root directory is missing or
	// unreadable. This is fatal for the whole run.
	ErrContentRoot = errors.New("content root unreadable")
)
