package calendar

import "errors"

var (
	// ErrEventNotFound indicates the event doesn't exist.
	ErrEventNotFound = errors.New("event not found")
	// ErrInvalidInput indicates invalid event input.
	ErrInvalidInput = errors.New("invalid event input")
)
