package config

import "errors"

// Errors returned by configuration operations.
var (
	// ErrInvalidCanvas indicates an empty canvas selector.
	ErrInvalidCanvas = errors.New("invalid canvas selector")

	// ErrInvalidThread indicates a thread token that is not positive.
	ErrInvalidThread = errors.New("invalid thread token")

	// ErrInvalidEvents indicates an unknown listener group.
	ErrInvalidEvents = errors.New("invalid listener groups")

	// ErrInvalidValue indicates a negative size or limit.
	ErrInvalidValue = errors.New("invalid value")
)
