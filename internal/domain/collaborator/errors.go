package collaborator

import "errors"

var (
	// ErrCollaboratorNotFound indicates the collaborator doesn't exist.
	ErrCollaboratorNotFound = errors.New("collaborator not found")
	// ErrInvalidInput indicates invalid collaborator input.
	ErrInvalidInput = errors.New("invalid collaborator input")
)
