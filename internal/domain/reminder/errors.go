package reminder

import "errors"

var (
	// ErrReminderNotFound indicates the reminder doesn't exist, or is
	// already read when an unread one is required.
	ErrReminderNotFound = errors.New("reminder not found")
	// ErrInvalidInput indicates invalid reminder input.
	ErrInvalidInput = errors.New("invalid reminder input")
)
