package subscriptions

import "errors"

var (
	// ErrNotFound indicates the subscription does not exist for this user.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the request payload failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyActive indicates the user already has an active paid plan.
	ErrAlreadyActive = errors.New("subscription already active")
)
