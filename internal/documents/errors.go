package documents

import "errors"

// ErrInvalidInput marks a request body that does not decode into a document.
var ErrInvalidInput = errors.New("invalid input")
