package cvs

import "errors"

var (
	// ErrNotFound indicates the CV does not exist or belongs to another user.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the payload failed schema validation or
	// normalization.
	ErrInvalidInput = errors.New("invalid input")
)
