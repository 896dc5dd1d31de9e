package versions

import "errors"

var (
	// ErrNotFound means no version exists with the given ID.
	ErrNotFound = errors.New("version not found")
	// ErrNameTaken means another version already uses the requested name.
	ErrNameTaken = errors.New("version name already in use")
	// ErrNoEditableData means the version has an artifact but no snapshot,
	// so there is nothing to load into the editor.
	ErrNoEditableData = errors.New("version has no editable data")
	// ErrNoContent means the current document is empty and cannot be saved.
	ErrNoContent = errors.New("no resume content to save")
	// ErrInvalidInput marks a bad version name or request body.
	ErrInvalidInput = errors.New("invalid input")
)
