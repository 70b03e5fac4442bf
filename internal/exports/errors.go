package exports

import "errors"

var (
	// ErrNotFound indicates the export does not exist or belongs to
	// another user.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates an unsupported format or missing field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotReady indicates a download was requested before the worker
	// finished the export.
	ErrNotReady = errors.New("export not ready")
)
