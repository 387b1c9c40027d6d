package mcp

import (
	"time"

	"github.com/rpggio/smmdesk/internal/domain/calendar"
	"github.com/rpggio/smmdesk/internal/domain/client"
	"github.com/rpggio/smmdesk/internal/domain/collaborator"
	"github.com/rpggio/smmdesk/internal/domain/mailbox"
	"github.com/rpggio/smmdesk/internal/domain/operator"
	"github.com/rpggio/smmdesk/internal/domain/project"
	"github.com/rpggio/smmdesk/internal/domain/reminder"
)

type IDParams struct {
	ID int64 `json:"id"`
}

type SearchParams struct {
	Search string `json:"search,omitempty"`
}

type ListClientsParams struct {
	Search string `json:"search,omitempty"`
	Active *bool  `json:"active,omitempty"`
}

type UpdateClientParams struct {
	ID int64 `json:"id"`
	client.Patch
}

type ListProjectsParams struct {
	ClientID   int64          `json:"client_id,omitempty"`
	OperatorID int64          `json:"operator_id,omitempty"`
	Status     project.Status `json:"status,omitempty"`
	Search     string         `json:"search,omitempty"`
}

type UpdateProjectParams struct {
	ID int64 `json:"id"`
	project.Patch
}

type UpdateOperatorParams struct {
	ID int64 `json:"id"`
	operator.Patch
}

type CollaboratorIDParams struct {
	ID string `json:"id"`
}

type UpdateCollaboratorParams struct {
	ID string `json:"id"`
	collaborator.Fields
}

type ListEventsParams struct {
	ProjectID  int64      `json:"project_id,omitempty"`
	OperatorID int64      `json:"operator_id,omitempty"`
	Day        string     `json:"day,omitempty"`
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
}

type UpdateEventParams struct {
	ID int64 `json:"id"`
	calendar.Patch
}

type GetMonthParams struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type UpcomingEventsParams struct {
	WithinDays int `json:"within_days,omitempty"`
	Limit      int `json:"limit,omitempty"`
}

type ListRemindersParams struct {
	ActiveOnly bool `json:"active_only,omitempty"`
}

type ListArticlesParams struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
}

type ListMessagesParams struct {
	Folder mailbox.Folder `json:"folder,omitempty"`
	Search string         `json:"search,omitempty"`
}

type GetRecentActivityParams struct {
	EntityType string `json:"entity_type,omitempty"`
	EntityID   string `json:"entity_id,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// ReminderResponse is a reminder with its relative due label.
type ReminderResponse struct {
	reminder.Reminder
	DueLabel string `json:"due_label"`
}

type MessageListResponse struct {
	Folder   mailbox.Folder    `json:"folder"`
	Unread   int               `json:"unread"`
	Messages []mailbox.Message `json:"messages"`
}

type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}
