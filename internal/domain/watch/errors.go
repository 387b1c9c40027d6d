package watch

import "errors"

var (
	// ErrFeedNotFound indicates the feed doesn't exist.
	ErrFeedNotFound = errors.New("feed not found")
	// ErrInvalidInput indicates invalid feed input.
	ErrInvalidInput = errors.New("invalid feed input")
)
