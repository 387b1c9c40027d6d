package client

import "errors"

var (
	// ErrClientNotFound indicates the client doesn't exist.
	ErrClientNotFound = errors.New("client not found")
	// ErrInvalidInput indicates invalid client input.
	ErrInvalidInput = errors.New("invalid client input")
	// ErrClientHasProjects indicates the client still owns projects and cannot be deleted.
	ErrClientHasProjects = errors.New("client has projects")
)
