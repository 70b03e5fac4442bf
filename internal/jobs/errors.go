package jobs

import "errors"

var (
	// ErrNotFound indicates the job offer does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the request payload failed validation.
	ErrInvalidInput = errors.New("invalid input")
)
