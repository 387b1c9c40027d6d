package operator

import "errors"

var (
	// ErrOperatorNotFound indicates the operator doesn't exist.
	ErrOperatorNotFound = errors.New("operator not found")
	// ErrInvalidInput indicates invalid operator input.
	ErrInvalidInput = errors.New("invalid operator input")
	// ErrOperatorAssigned indicates the operator is still assigned to projects.
	ErrOperatorAssigned = errors.New("operator assigned to projects")
)
