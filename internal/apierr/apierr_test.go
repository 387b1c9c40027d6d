package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/rpggio/smmdesk/internal/domain/client"
	"github.com/rpggio/smmdesk/internal/domain/mailbox"
	"github.com/rpggio/smmdesk/internal/domain/operator"
	"github.com/rpggio/smmdesk/internal/domain/project"
	"github.com/rpggio/smmdesk/internal/domain/reminder"
	"github.com/rpggio/smmdesk/internal/validation"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"client not found", fmt.Errorf("getting client: %w", client.ErrClientNotFound), "CLIENT_NOT_FOUND", http.StatusNotFound},
		{"reminder not found", reminder.ErrReminderNotFound, "REMINDER_NOT_FOUND", http.StatusNotFound},
		{"has projects", client.ErrClientHasProjects, "CLIENT_HAS_PROJECTS", http.StatusConflict},
		{"assigned", operator.ErrOperatorAssigned, "OPERATOR_ASSIGNED", http.StatusConflict},
		{"unknown client", project.ErrUnknownClient, "UNKNOWN_CLIENT", http.StatusBadRequest},
		{"unknown folder", mailbox.ErrUnknownFolder, "UNKNOWN_FOLDER", http.StatusBadRequest},
		{"mail account not found", fmt.Errorf("deleting: %w", mailbox.ErrAccountNotFound), "MAIL_ACCOUNT_NOT_FOUND", http.StatusNotFound},
		{"mail account input", fmt.Errorf("%w: email", mailbox.ErrInvalidInput), "INVALID_INPUT", http.StatusBadRequest},
		{"bad request", BadRequest("id must be numeric"), "BAD_REQUEST", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Map(tt.err)
			require.NotNil(t, got)
			require.Equal(t, tt.code, got.Code)
			require.Equal(t, tt.status, got.Status)
		})
	}
}

type nameOnly struct {
	Name string `json:"name" validate:"notblank"`
}

func TestMap_InvalidInputCarriesFields(t *testing.T) {
	err := validation.Struct(nameOnly{}, project.ErrInvalidInput)
	got := Map(err)
	require.NotNil(t, got)
	require.Equal(t, "INVALID_INPUT", got.Code)
	require.Equal(t, []string{"name"}, got.Fields)
	require.Equal(t, http.StatusBadRequest, got.Status)
}

func TestMap_Unknown(t *testing.T) {
	require.Nil(t, Map(nil))
	require.Nil(t, Map(errors.New("disk on fire")))

	got := MapOrInternal(errors.New("disk on fire"))
	require.Equal(t, "INTERNAL", got.Code)
	require.Equal(t, http.StatusInternalServerError, got.Status)
}
