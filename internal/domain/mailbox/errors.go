package mailbox

import "errors"

var (
	// ErrMessageNotFound indicates the message doesn't exist.
	ErrMessageNotFound = errors.New("message not found")
	// ErrUnknownFolder indicates the folder name is not one of Folders.
	ErrUnknownFolder = errors.New("unknown folder")
	// ErrAccountNotFound indicates the mail account doesn't exist.
	ErrAccountNotFound = errors.New("mail account not found")
	// ErrInvalidInput indicates invalid mail account input.
	ErrInvalidInput = errors.New("invalid mail account input")
)
