package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rpggio/smmdesk/internal/apierr"
	"github.com/rpggio/smmdesk/internal/app"
	"github.com/rpggio/smmdesk/internal/domain/activity"
	"github.com/rpggio/smmdesk/internal/domain/calendar"
	"github.com/rpggio/smmdesk/internal/domain/client"
	"github.com/rpggio/smmdesk/internal/domain/collaborator"
	"github.com/rpggio/smmdesk/internal/domain/idea"
	"github.com/rpggio/smmdesk/internal/domain/mailbox"
	"github.com/rpggio/smmdesk/internal/domain/operator"
	"github.com/rpggio/smmdesk/internal/domain/project"
	"github.com/rpggio/smmdesk/internal/domain/reminder"
	"github.com/rpggio/smmdesk/internal/domain/watch"
)

const defaultUpcomingDays = 30

// Handler dispatches MCP tool calls to the domain services.
type Handler struct {
	svc *app.Services
	now func() time.Time
}

// NewHandler creates a new MCP handler.
func NewHandler(svc *app.Services, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{svc: svc, now: now}
}

// Handle runs the tool named method with its raw JSON arguments.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	// Clients
	case "list_clients":
		var req ListClientsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Clients.List(ctx, client.ListFilter{Search: req.Search, Active: req.Active})
	case "get_client":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Clients.Get(ctx, req.ID)
	case "create_client":
		var req client.CreateRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Clients.Create(ctx, req)
	case "update_client":
		var req UpdateClientParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Clients.Update(ctx, req.ID, req.Patch)
	case "delete_client":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return deleted(h.svc.Clients.Delete(ctx, req.ID))

	// Projects
	case "list_projects":
		var req ListProjectsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Projects.List(ctx, project.ListFilter{
			ClientID:   req.ClientID,
			OperatorID: req.OperatorID,
			Status:     req.Status,
			Search:     req.Search,
		})
	case "get_project":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Projects.Get(ctx, req.ID)
	case "create_project":
		var req project.CreateRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Projects.Create(ctx, req)
	case "update_project":
		var req UpdateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Projects.Update(ctx, req.ID, req.Patch)
	case "delete_project":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return deleted(h.svc.Projects.Delete(ctx, req.ID))

	// Operators
	case "list_operators":
		var req SearchParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Operators.List(ctx, req.Search)
	case "list_operator_roles":
		return h.svc.Operators.Roles(), nil
	case "get_operator":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Operators.Get(ctx, req.ID)
	case "create_operator":
		var req operator.CreateRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Operators.Create(ctx, req)
	case "update_operator":
		var req UpdateOperatorParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Operators.Update(ctx, req.ID, req.Patch)
	case "delete_operator":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return deleted(h.svc.Operators.Delete(ctx, req.ID))

	// Collaborators
	case "list_collaborators":
		var req SearchParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Collaborators.List(ctx, req.Search)
	case "create_collaborator":
		var req collaborator.Fields
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Collaborators.Create(ctx, req)
	case "update_collaborator":
		var req UpdateCollaboratorParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Collaborators.Update(ctx, req.ID, req.Fields)
	case "delete_collaborator":
		var req CollaboratorIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return deleted(h.svc.Collaborators.Delete(ctx, req.ID))

	// Calendar
	case "list_events":
		var req ListEventsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.listEvents(ctx, req)
	case "get_event":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Calendar.Get(ctx, req.ID)
	case "create_event":
		var req calendar.CreateRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Calendar.Create(ctx, req)
	case "update_event":
		var req UpdateEventParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Calendar.Update(ctx, req.ID, req.Patch)
	case "delete_event":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return deleted(h.svc.Calendar.Delete(ctx, req.ID))
	case "get_month":
		var req GetMonthParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Calendar.MonthGrid(ctx, req.Year, time.Month(req.Month))
	case "get_upcoming_events":
		var req UpcomingEventsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		days := req.WithinDays
		if days <= 0 {
			days = defaultUpcomingDays
		}
		return h.svc.Calendar.Upcoming(ctx, h.now(), time.Duration(days)*24*time.Hour, req.Limit)
	case "sync_project_deadlines":
		return h.svc.Calendar.SyncProjectDeadlines(ctx)

	// Reminders
	case "list_reminders":
		var req ListRemindersParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		list := h.svc.Reminders.List(ctx)
		if req.ActiveOnly {
			list = h.svc.Reminders.Active(ctx)
		}
		now := h.now()
		resp := make([]ReminderResponse, 0, len(list))
		for _, r := range list {
			resp = append(resp, reminderResponse(r, now))
		}
		return resp, nil
	case "add_reminder":
		var req reminder.AddRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		r, err := h.svc.Reminders.Add(ctx, req)
		if err != nil {
			return nil, err
		}
		return reminderResponse(*r, h.now()), nil
	case "mark_reminder_read":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.svc.Reminders.MarkRead(ctx, req.ID); err != nil {
			return nil, err
		}
		return map[string]bool{"read": true}, nil
	case "snooze_reminder":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		r, err := h.svc.Reminders.Snooze(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return reminderResponse(*r, h.now()), nil
	case "remove_reminder":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return deleted(h.svc.Reminders.Remove(ctx, req.ID))

	// Idea bank
	case "list_ideas":
		var req SearchParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Ideas.List(ctx, req.Search)
	case "create_idea":
		var req idea.CreateRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Ideas.Create(ctx, req)
	case "delete_idea":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return deleted(h.svc.Ideas.Delete(ctx, req.ID))

	// Web watch
	case "list_feeds":
		return h.svc.Watch.ListFeeds(ctx)
	case "create_feed":
		var req watch.CreateFeedRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Watch.CreateFeed(ctx, req)
	case "delete_feed":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return deleted(h.svc.Watch.DeleteFeed(ctx, req.ID))
	case "list_articles":
		var req ListArticlesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Watch.Articles(ctx, watch.ArticleFilter{Search: req.Search, Category: req.Category})
	case "list_article_categories":
		return h.svc.Watch.Categories(ctx)

	// Mail
	case "list_messages":
		var req ListMessagesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		folder := req.Folder
		if folder == "" {
			folder = mailbox.FolderInbox
		}
		messages, err := h.svc.Mailbox.List(ctx, folder, req.Search)
		if err != nil {
			return nil, err
		}
		unread, err := h.svc.Mailbox.UnreadCount(ctx, folder)
		if err != nil {
			return nil, err
		}
		return MessageListResponse{Folder: folder, Unread: unread, Messages: messages}, nil
	case "get_message":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Mailbox.Get(ctx, req.ID)
	case "list_mail_accounts":
		return h.svc.MailAccounts.List(ctx)
	case "create_mail_account":
		var req mailbox.CreateAccountRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.MailAccounts.Create(ctx, req)
	case "delete_mail_account":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return deleted(h.svc.MailAccounts.Delete(ctx, req.ID))

	// Overview
	case "get_dashboard":
		return h.svc.Dashboard.Summary(ctx, h.now())
	case "get_recent_activity":
		var req GetRecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Activity.GetRecentActivity(ctx, activity.ListActivityOptions{
			EntityType: activity.EntityType(req.EntityType),
			EntityID:   req.EntityID,
			Limit:      req.Limit,
		})
	default:
		return nil, apierr.BadRequest(fmt.Sprintf("unknown tool: %s", method))
	}
}

func (h *Handler) listEvents(ctx context.Context, req ListEventsParams) ([]calendar.Event, error) {
	switch {
	case req.ProjectID > 0:
		return h.svc.Calendar.ListByProject(ctx, req.ProjectID)
	case req.OperatorID > 0:
		return h.svc.Calendar.ListByOperator(ctx, req.OperatorID)
	case req.Day != "":
		day, err := time.ParseInLocation(time.DateOnly, req.Day, h.svc.Calendar.Location())
		if err != nil {
			return nil, apierr.BadRequest(fmt.Sprintf("invalid day %q, want YYYY-MM-DD", req.Day))
		}
		return h.svc.Calendar.ListByDay(ctx, day)
	case req.From != nil || req.To != nil:
		if req.From == nil || req.To == nil {
			return nil, apierr.BadRequest("from and to must be given together")
		}
		return h.svc.Calendar.ListInRange(ctx, *req.From, *req.To)
	default:
		return h.svc.Calendar.List(ctx)
	}
}

// decodeParams strictly decodes tool arguments. Missing arguments decode to
// the zero value.
func decodeParams(params json.RawMessage, out any) error {
	trimmed := bytes.TrimSpace(params)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return apierr.BadRequest(fmt.Sprintf("invalid arguments: %v", err))
	}
	return nil
}

func deleted(err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return DeletedResponse{Deleted: true}, nil
}

func reminderResponse(r reminder.Reminder, now time.Time) ReminderResponse {
	return ReminderResponse{Reminder: r, DueLabel: reminder.DueLabel(r, now)}
}
