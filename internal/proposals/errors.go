package proposals

import "errors"

var (
	// ErrNotFound means no proposal exists with the given ID.
	ErrNotFound = errors.New("proposal not found")
	// ErrAlreadyDecided means the proposal was approved or rejected before.
	ErrAlreadyDecided = errors.New("proposal already decided")
	// ErrMalformed means the proposal cannot be approved as proposed.
	ErrMalformed = errors.New("proposal is malformed")
)
