package sqlite

import (
	"errors"
	"strings"
)

// ErrInvalidActivity is returned when an activity row violates a schema check.
var ErrInvalidActivity = errors.New("invalid activity entry")

func isCheckViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "CHECK constraint failed")
}
