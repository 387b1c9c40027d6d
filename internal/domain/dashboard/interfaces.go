package dashboard

import (
	"context"
	"time"

	"github.com/rpggio/smmdesk/internal/domain/calendar"
	"github.com/rpggio/smmdesk/internal/domain/client"
	"github.com/rpggio/smmdesk/internal/domain/collaborator"
	"github.com/rpggio/smmdesk/internal/domain/operator"
	"github.com/rpggio/smmdesk/internal/domain/project"
)

// ClientLister lists clients.
type ClientLister interface {
	List(ctx context.Context, filter client.ListFilter) ([]client.Client, error)
}

// ProjectLister lists projects.
type ProjectLister interface {
	List(ctx context.Context, filter project.ListFilter) ([]project.Project, error)
}

// OperatorLister lists operators.
type OperatorLister interface {
	List(ctx context.Context, search string) ([]operator.Operator, error)
}

// CollaboratorLister lists collaborators.
type CollaboratorLister interface {
	List(ctx context.Context, search string) ([]collaborator.Collaborator, error)
}

// EventSource yields upcoming calendar events.
type EventSource interface {
	Upcoming(ctx context.Context, now time.Time, within time.Duration, limit int) ([]calendar.Event, error)
}
