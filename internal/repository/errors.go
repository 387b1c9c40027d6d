package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrPersist is returned when a collection snapshot could not be written
	ErrPersist = errors.New("snapshot write failed")
)
