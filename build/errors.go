package build

import "errors"

var (
	// ErrConfig indicates an invalid orchestrator configuration.
	ErrConfig = errors.New("invalid build configuration")

	// ErrStaging indicates the staging area could not be created or
	// written. Fatal: the previous build stays in place.
	ErrStaging = errors.New("staging area unwritable")

	// ErrCommit indicates the atomic swap of staging into the output
	// location failed.
	ErrCommit = errors.New("artifact commit failed")
)
