// Package apierr maps domain errors onto the codes and HTTP statuses the
// REST API and the MCP tools report.
package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rpggio/smmdesk/internal/domain/calendar"
	"github.com/rpggio/smmdesk/internal/domain/client"
	"github.com/rpggio/smmdesk/internal/domain/collaborator"
	"github.com/rpggio/smmdesk/internal/domain/idea"
	"github.com/rpggio/smmdesk/internal/domain/mailbox"
	"github.com/rpggio/smmdesk/internal/domain/operator"
	"github.com/rpggio/smmdesk/internal/domain/project"
	"github.com/rpggio/smmdesk/internal/domain/reminder"
	"github.com/rpggio/smmdesk/internal/domain/watch"
	"github.com/rpggio/smmdesk/internal/validation"
)

// APIError is the error body returned to callers.
type APIError struct {
	Code         string   `json:"code"`
	Message      string   `json:"message"`
	Fields       []string `json:"fields,omitempty"`
	RecoveryHint string   `json:"recovery_hint,omitempty"`
	Status       int      `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Internal wraps an unexpected failure. The cause is not exposed.
func Internal() *APIError {
	return &APIError{Code: "INTERNAL", Message: "internal error", Status: http.StatusInternalServerError}
}

// BadRequest reports a malformed request that never reached a service.
func BadRequest(msg string) *APIError {
	return &APIError{Code: "BAD_REQUEST", Message: msg, Status: http.StatusBadRequest}
}

var notFound = []struct {
	err  error
	code string
}{
	{client.ErrClientNotFound, "CLIENT_NOT_FOUND"},
	{project.ErrProjectNotFound, "PROJECT_NOT_FOUND"},
	{operator.ErrOperatorNotFound, "OPERATOR_NOT_FOUND"},
	{collaborator.ErrCollaboratorNotFound, "COLLABORATOR_NOT_FOUND"},
	{calendar.ErrEventNotFound, "EVENT_NOT_FOUND"},
	{reminder.ErrReminderNotFound, "REMINDER_NOT_FOUND"},
	{idea.ErrIdeaNotFound, "IDEA_NOT_FOUND"},
	{watch.ErrFeedNotFound, "FEED_NOT_FOUND"},
	{mailbox.ErrMessageNotFound, "MESSAGE_NOT_FOUND"},
	{mailbox.ErrAccountNotFound, "MAIL_ACCOUNT_NOT_FOUND"},
}

var invalid = []error{
	client.ErrInvalidInput,
	project.ErrInvalidInput,
	operator.ErrInvalidInput,
	collaborator.ErrInvalidInput,
	calendar.ErrInvalidInput,
	reminder.ErrInvalidInput,
	idea.ErrInvalidInput,
	watch.ErrInvalidInput,
	mailbox.ErrInvalidInput,
}

// Map translates err into an APIError. Unknown errors map to nil so the
// caller can decide how to report them.
func Map(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	for _, nf := range notFound {
		if errors.Is(err, nf.err) {
			return &APIError{Code: nf.code, Message: nf.err.Error(), Status: http.StatusNotFound, RecoveryHint: "Check the ID with the matching list call"}
		}
	}
	for _, inv := range invalid {
		if errors.Is(err, inv) {
			return &APIError{Code: "INVALID_INPUT", Message: err.Error(), Fields: validation.Fields(err), Status: http.StatusBadRequest}
		}
	}

	switch {
	case errors.Is(err, client.ErrClientHasProjects):
		return &APIError{Code: "CLIENT_HAS_PROJECTS", Message: "client still has projects", Status: http.StatusConflict, RecoveryHint: "Delete or reassign the client's projects first"}
	case errors.Is(err, operator.ErrOperatorAssigned):
		return &APIError{Code: "OPERATOR_ASSIGNED", Message: "operator is assigned to projects", Status: http.StatusConflict, RecoveryHint: "Remove the operator from its projects first"}
	case errors.Is(err, project.ErrUnknownClient):
		return &APIError{Code: "UNKNOWN_CLIENT", Message: "client does not exist", Status: http.StatusBadRequest, RecoveryHint: "Create the client or pick an existing one"}
	case errors.Is(err, mailbox.ErrUnknownFolder):
		return &APIError{Code: "UNKNOWN_FOLDER", Message: "unknown mail folder", Status: http.StatusBadRequest}
	default:
		return nil
	}
}

// MapOrInternal is Map with a fallback for unknown errors.
func MapOrInternal(err error) *APIError {
	if apiErr := Map(err); apiErr != nil {
		return apiErr
	}
	return Internal()
}
