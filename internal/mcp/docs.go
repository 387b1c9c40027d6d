package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `smmdesk is the back office of a social media agency.

Data model:
- Client: a company the agency works for. Clients own Projects.
- Project: work for one client, with a status, due date and assigned Operators.
- Operator: an in-house team member with a role. Collaborator: an external freelancer.
- Event: a calendar entry (meeting, deadline, publication, other), optionally linked to a project.
- Reminder: a due notice that can be read, snoozed or removed.
- Idea: a content idea in the idea bank. Feed/Article: read-only web watch. Message: read-only mailbox.

Typical workflow:
1) Orient with get_dashboard and get_upcoming_events.
2) Browse with list_* tools; filters are optional and case-insensitive.
3) Mutate with create_*/update_*/delete_*. Updates change only the fields you pass.
4) Run sync_project_deadlines after changing project due dates to get deadline events on the calendar.

Errors come back as {"error": {"code", "message", "fields", "recovery_hint"}}.

Docs:
- smmdesk://docs/index
- smmdesk://docs/calendar
- smmdesk://docs/reminders
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "smmdesk://docs/index",
		Name:        "docs_index",
		Title:       "smmdesk docs index",
		Description: "What each tool group covers and which doc to read next.",
		Content: `# smmdesk docs

## Tool groups
- Clients: list_clients, get_client, create_client, update_client, delete_client
- Projects: list_projects, get_project, create_project, update_project, delete_project
- Team: list_operators, list_operator_roles, *_operator, list_collaborators, *_collaborator
- Calendar: list_events, get_month, get_upcoming_events, *_event, sync_project_deadlines
- Reminders: list_reminders, add_reminder, mark_reminder_read, snooze_reminder, remove_reminder
- Content: list_ideas, create_idea, delete_idea
- Web watch: list_feeds, create_feed, delete_feed, list_articles, list_article_categories
- Mail: list_messages, get_message, list_mail_accounts, create_mail_account, delete_mail_account
- Overview: get_dashboard, get_recent_activity

## Rules
- A client that still owns projects cannot be deleted. Delete or move its projects first.
- An operator assigned to a project cannot be deleted. Unassign them first.
- A project must reference an existing client.
- Articles and mail messages are read-only. Mail accounts are labels only; nothing connects to their server.

## Read next
- smmdesk://docs/calendar for month grids and deadline sync.
- smmdesk://docs/reminders for snooze semantics.
`,
	},
	{
		URI:         "smmdesk://docs/calendar",
		Name:        "docs_calendar",
		Title:       "Calendar",
		Description: "Month grids, event filters and project deadline sync.",
		Content: `# Calendar

## Events
Times are RFC 3339. An event end must not precede its start.
list_events accepts one filter at a time, checked in this order:
project_id, operator_id, day (YYYY-MM-DD), from+to.

## Month grid
get_month(year, month) returns whole weeks. Leading and trailing days from
neighbouring months are included and flagged with in_month=false. Each day
lists the events that start on it, ordered by start time.

## Deadline sync
sync_project_deadlines reads every project due date written as
"<day> <Italian month abbreviation> <year>", e.g. "30 Giu 2025".
Projects with "Continuo" or an unparseable due date are skipped.
ISO dates (2025-06-30) and English abbreviations are accepted too.
A deadline event is created at midnight of the due date unless the project
already has one. Running it twice creates nothing new.
`,
	},
	{
		URI:         "smmdesk://docs/reminders",
		Name:        "docs_reminders",
		Title:       "Reminders",
		Description: "Due labels, snooze and read state.",
		Content: `# Reminders

list_reminders returns each reminder with a due_label relative to now,
e.g. "30 minutes from now", or "overdue" once the due time has passed.

snooze_reminder removes the reminder and adds a copy due one snooze
interval (30 minutes by default) after the original due time. The copy
has a new id.
Read reminders cannot be snoozed.

mark_reminder_read keeps the reminder but hides it from active_only lists.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
