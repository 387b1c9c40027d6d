package calendar

import (
	"context"
	"time"

	"github.com/rpggio/smmdesk/internal/domain/project"
)

// Repository provides persistence for calendar events.
type Repository interface {
	Create(ctx context.Context, e *Event) error
	Get(ctx context.Context, id int64) (*Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Event, error)
	ListByProject(ctx context.Context, projectID int64) ([]Event, error)
	ListByOperator(ctx context.Context, operatorID int64) ([]Event, error)
	// ListByDay returns events starting on the same calendar day as day,
	// compared in day's location.
	ListByDay(ctx context.Context, day time.Time) ([]Event, error)
	// ListInRange returns events starting within [from, to], both inclusive.
	ListInRange(ctx context.Context, from, to time.Time) ([]Event, error)
}

// ProjectLister is the project source for deadline synchronization.
type ProjectLister interface {
	List(ctx context.Context) ([]project.Project, error)
}
