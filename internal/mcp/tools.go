package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition describes a callable tool.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
	ReadOnly    bool
}

func object(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

func enum(description string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": description, "enum": values}
}

func intList(description string) map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "integer"}, "description": description}
}

var (
	idProp      = prop("integer", "Numeric ID")
	searchProp  = prop("string", "Case-insensitive text filter")
	statusEnum  = []string{"active", "in_progress", "planning", "completed", "on_hold", "cancelled"}
	eventTypes  = []string{"meeting", "deadline", "publication", "other"}
	categories  = []string{"event", "task", "project", "other"}
	mailFolders = []string{"inbox", "starred", "sent", "drafts", "archived", "trash"}
)

func clientProps() map[string]any {
	return map[string]any{
		"name":            prop("string", "Company name"),
		"sector":          prop("string", "Business sector"),
		"contact":         prop("string", "Contact person"),
		"email":           prop("string", "Contact email"),
		"phone":           prop("string", "Phone number"),
		"tax_id":          prop("string", "VAT number"),
		"address":         prop("string", "Postal address"),
		"notes":           prop("string", "Free notes"),
		"contract":        prop("string", "Contract type"),
		"contract_expiry": prop("string", "Contract expiry, free text"),
		"active":          prop("boolean", "Whether the client is active"),
	}
}

func projectProps() map[string]any {
	return map[string]any{
		"name":            prop("string", "Project name"),
		"client_id":       prop("integer", "Owning client ID; must exist"),
		"objectives":      prop("string", "Project objectives"),
		"budget":          prop("string", "Budget, free text"),
		"start_date":      prop("string", "Start date, free text"),
		"due_date":        prop("string", "Due date, e.g. \"30 Giu 2025\" or \"Continuo\""),
		"status":          enum("Project status", statusEnum...),
		"operator_ids":    intList("Assigned operator IDs"),
		"completed_tasks": prop("integer", "Completed task count"),
		"total_tasks":     prop("integer", "Total task count"),
	}
}

func operatorProps() map[string]any {
	return map[string]any{
		"first_name": prop("string", "First name"),
		"last_name":  prop("string", "Last name"),
		"email":      prop("string", "Email"),
		"role":       prop("string", "One of the roles from list_operator_roles"),
		"notes":      prop("string", "Free notes"),
	}
}

func collaboratorProps() map[string]any {
	return map[string]any{
		"first_name":     prop("string", "First name"),
		"last_name":      prop("string", "Last name"),
		"email":          prop("string", "Email"),
		"specialization": prop("string", "Specialization"),
		"phone":          prop("string", "Phone number"),
		"notes":          prop("string", "Free notes"),
		"active":         prop("boolean", "Whether the collaborator is active"),
	}
}

func eventProps() map[string]any {
	return map[string]any{
		"title":        prop("string", "Event title"),
		"description":  prop("string", "Event description"),
		"start":        prop("string", "Start time, RFC 3339"),
		"end":          prop("string", "End time, RFC 3339; must not precede start"),
		"project_id":   prop("integer", "Linked project ID"),
		"operator_ids": intList("Participating operator IDs"),
		"type":         enum("Event type", eventTypes...),
		"completed":    prop("boolean", "Whether the event is done"),
	}
}

func withID(props map[string]any, id map[string]any) map[string]any {
	props["id"] = id
	return props
}

// buildToolCatalog returns all available MCP tools.
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		// Clients
		{Name: "list_clients", Description: "List clients, optionally filtered by text and active flag", ReadOnly: true,
			InputSchema: object(map[string]any{"search": searchProp, "active": prop("boolean", "Only active or inactive clients")})},
		{Name: "get_client", Description: "Get a client by ID", ReadOnly: true,
			InputSchema: object(map[string]any{"id": idProp}, "id")},
		{Name: "create_client", Description: "Create a client",
			InputSchema: object(clientProps(), "name")},
		{Name: "update_client", Description: "Update the given fields of a client",
			InputSchema: object(withID(clientProps(), idProp), "id")},
		{Name: "delete_client", Description: "Delete a client. Fails while the client owns projects",
			InputSchema: object(map[string]any{"id": idProp}, "id")},

		// Projects
		{Name: "list_projects", Description: "List projects filtered by client, operator, status or text", ReadOnly: true,
			InputSchema: object(map[string]any{
				"client_id":   prop("integer", "Only projects of this client"),
				"operator_id": prop("integer", "Only projects this operator is assigned to"),
				"status":      enum("Only projects in this status", statusEnum...),
				"search":      searchProp,
			})},
		{Name: "get_project", Description: "Get a project by ID", ReadOnly: true,
			InputSchema: object(map[string]any{"id": idProp}, "id")},
		{Name: "create_project", Description: "Create a project for an existing client",
			InputSchema: object(projectProps(), "name", "client_id", "status")},
		{Name: "update_project", Description: "Update the given fields of a project",
			InputSchema: object(withID(projectProps(), idProp), "id")},
		{Name: "delete_project", Description: "Delete a project",
			InputSchema: object(map[string]any{"id": idProp}, "id")},

		// Operators
		{Name: "list_operators", Description: "List in-house operators", ReadOnly: true,
			InputSchema: object(map[string]any{"search": searchProp})},
		{Name: "list_operator_roles", Description: "List the roles an operator may have", ReadOnly: true,
			InputSchema: object(map[string]any{})},
		{Name: "get_operator", Description: "Get an operator by ID", ReadOnly: true,
			InputSchema: object(map[string]any{"id": idProp}, "id")},
		{Name: "create_operator", Description: "Create an operator",
			InputSchema: object(operatorProps(), "first_name", "last_name", "email", "role")},
		{Name: "update_operator", Description: "Update the given fields of an operator",
			InputSchema: object(withID(operatorProps(), idProp), "id")},
		{Name: "delete_operator", Description: "Delete an operator. Fails while the operator is assigned to projects",
			InputSchema: object(map[string]any{"id": idProp}, "id")},

		// Collaborators
		{Name: "list_collaborators", Description: "List external collaborators", ReadOnly: true,
			InputSchema: object(map[string]any{"search": searchProp})},
		{Name: "create_collaborator", Description: "Create a collaborator",
			InputSchema: object(collaboratorProps(), "first_name", "last_name", "email", "specialization")},
		{Name: "update_collaborator", Description: "Replace every field of a collaborator",
			InputSchema: object(withID(collaboratorProps(), prop("string", "Collaborator ID")), "id", "first_name", "last_name", "email", "specialization")},
		{Name: "delete_collaborator", Description: "Delete a collaborator",
			InputSchema: object(map[string]any{"id": prop("string", "Collaborator ID")}, "id")},

		// Calendar
		{Name: "list_events", Description: "List calendar events. Filter by one of project_id, operator_id, day or from+to", ReadOnly: true,
			InputSchema: object(map[string]any{
				"project_id":  prop("integer", "Events linked to this project"),
				"operator_id": prop("integer", "Events this operator takes part in"),
				"day":         prop("string", "Events starting on this day, YYYY-MM-DD"),
				"from":        prop("string", "Range start, RFC 3339"),
				"to":          prop("string", "Range end, RFC 3339"),
			})},
		{Name: "get_event", Description: "Get an event by ID", ReadOnly: true,
			InputSchema: object(map[string]any{"id": idProp}, "id")},
		{Name: "create_event", Description: "Create a calendar event",
			InputSchema: object(eventProps(), "title", "start", "type")},
		{Name: "update_event", Description: "Update the given fields of an event. project_id 0 unlinks; clear_end removes the end time",
			InputSchema: object(withID(withClearEnd(eventProps()), idProp), "id")},
		{Name: "delete_event", Description: "Delete an event",
			InputSchema: object(map[string]any{"id": idProp}, "id")},
		{Name: "get_month", Description: "Get a month laid out in whole weeks with each day's events", ReadOnly: true,
			InputSchema: object(map[string]any{
				"year":  prop("integer", "Year, e.g. 2025"),
				"month": prop("integer", "Month 1-12"),
			}, "year", "month")},
		{Name: "get_upcoming_events", Description: "List events starting soon, earliest first", ReadOnly: true,
			InputSchema: object(map[string]any{
				"within_days": prop("integer", "Window length in days (default 30)"),
				"limit":       prop("integer", "Maximum events to return"),
			})},
		{Name: "sync_project_deadlines", Description: "Create a deadline event for every project with a due date and no deadline event yet",
			InputSchema: object(map[string]any{})},

		// Reminders
		{Name: "list_reminders", Description: "List reminders with a relative due label", ReadOnly: true,
			InputSchema: object(map[string]any{"active_only": prop("boolean", "Only unread reminders")})},
		{Name: "add_reminder", Description: "Add a reminder",
			InputSchema: object(map[string]any{
				"title":     prop("string", "Reminder title"),
				"message":   prop("string", "Reminder text"),
				"due":       prop("string", "Due time, RFC 3339"),
				"category":  enum("What the reminder is about", categories...),
				"entity_id": prop("integer", "Related entity ID"),
			}, "title", "due")},
		{Name: "mark_reminder_read", Description: "Mark a reminder as read",
			InputSchema: object(map[string]any{"id": idProp}, "id")},
		{Name: "snooze_reminder", Description: "Replace an unread reminder with a copy due later; the copy gets a new ID",
			InputSchema: object(map[string]any{"id": idProp}, "id")},
		{Name: "remove_reminder", Description: "Remove a reminder",
			InputSchema: object(map[string]any{"id": idProp}, "id")},

		// Idea bank
		{Name: "list_ideas", Description: "List content ideas, newest first", ReadOnly: true,
			InputSchema: object(map[string]any{"search": searchProp})},
		{Name: "create_idea", Description: "Add a content idea",
			InputSchema: object(map[string]any{
				"title":       prop("string", "Idea title"),
				"description": prop("string", "What the content is"),
				"niche":       prop("string", "Target niche"),
				"video_link":  prop("string", "Reference video URL"),
				"tags":        prop("string", "Comma separated tags"),
			}, "title", "description", "niche")},
		{Name: "delete_idea", Description: "Delete an idea",
			InputSchema: object(map[string]any{"id": idProp}, "id")},

		// Web watch
		{Name: "list_feeds", Description: "List RSS feeds", ReadOnly: true,
			InputSchema: object(map[string]any{})},
		{Name: "create_feed", Description: "Add an RSS feed",
			InputSchema: object(map[string]any{
				"name":     prop("string", "Feed name"),
				"url":      prop("string", "Feed URL"),
				"category": prop("string", "Feed category"),
			}, "name", "url", "category")},
		{Name: "delete_feed", Description: "Delete an RSS feed",
			InputSchema: object(map[string]any{"id": idProp}, "id")},
		{Name: "list_articles", Description: "List articles from the feeds", ReadOnly: true,
			InputSchema: object(map[string]any{
				"search":   searchProp,
				"category": prop("string", "Only articles from feeds in this category"),
			})},
		{Name: "list_article_categories", Description: "List the feed categories", ReadOnly: true,
			InputSchema: object(map[string]any{})},

		// Mail
		{Name: "list_messages", Description: "List mail messages in a folder with its unread count", ReadOnly: true,
			InputSchema: object(map[string]any{
				"folder": enum("Folder (default inbox)", mailFolders...),
				"search": searchProp,
			})},
		{Name: "get_message", Description: "Get a mail message with body and attachments", ReadOnly: true,
			InputSchema: object(map[string]any{"id": idProp}, "id")},
		{Name: "list_mail_accounts", Description: "List the configured mail accounts", ReadOnly: true,
			InputSchema: object(map[string]any{})},
		{Name: "create_mail_account", Description: "Add a mail account. Nothing connects to the server",
			InputSchema: object(map[string]any{
				"name":     prop("string", "Account label"),
				"email":    prop("string", "Address of the account"),
				"server":   prop("string", "IMAP host, optionally with :port"),
				"username": prop("string", "Login name"),
			}, "name", "email", "server", "username")},
		{Name: "delete_mail_account", Description: "Delete a mail account",
			InputSchema: object(map[string]any{"id": idProp}, "id")},

		// Overview
		{Name: "get_dashboard", Description: "Get headline counts, projects per client and status, and upcoming events", ReadOnly: true,
			InputSchema: object(map[string]any{})},
		{Name: "get_recent_activity", Description: "List recent changes, newest first", ReadOnly: true,
			InputSchema: object(map[string]any{
				"entity_type": enum("Only this kind of entity", "client", "project", "operator", "collaborator", "event", "idea", "feed", "mail_account"),
				"entity_id":   prop("string", "Only this entity"),
				"limit":       prop("integer", "Maximum entries"),
			})},
	}
}

func withClearEnd(props map[string]any) map[string]any {
	props["clear_end"] = prop("boolean", "Remove the end time")
	return props
}

// registerTools adds every catalog tool to server, dispatching through h.
func registerTools(server *sdkmcp.Server, h *Handler, logger *slog.Logger) {
	for _, def := range buildToolCatalog() {
		name := def.Name
		tool := &sdkmcp.Tool{
			Name:        name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}
		if def.ReadOnly {
			tool.Annotations = &sdkmcp.ToolAnnotations{ReadOnlyHint: true}
		}
		server.AddTool(tool, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args []byte
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			result, err := h.Handle(ctx, name, args)
			if err != nil {
				return toolErrorResult(logger, name, err), nil
			}
			return toolResult(result)
		})
	}
}
