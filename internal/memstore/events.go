package memstore

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/rpggio/smmdesk/internal/domain/calendar"
	"github.com/rpggio/smmdesk/internal/repository"
)

// EventRepository implements calendar.Repository.
type EventRepository struct {
	items *Collection[calendar.Event, int64]
}

// NewEventRepository creates an event repository persisted under KeyEvents.
func NewEventRepository(store Snapshots, logger *slog.Logger) *EventRepository {
	of := func(e *calendar.Event) int64 { return e.ID }
	return &EventRepository{
		items: NewCollection(KeyEvents, store, Identity[calendar.Event, int64]{
			Of:   of,
			Set:  func(e *calendar.Event, id int64) { e.ID = id },
			Next: SequentialID(of),
		},
			WithClone[calendar.Event, int64](cloneEvent),
			WithLogger[calendar.Event, int64](logger),
		),
	}
}

func cloneEvent(e calendar.Event) calendar.Event {
	e.OperatorIDs = slices.Clone(e.OperatorIDs)
	if e.End != nil {
		end := *e.End
		e.End = &end
	}
	if e.ProjectID != nil {
		id := *e.ProjectID
		e.ProjectID = &id
	}
	return e
}

// Load reads the snapshot, installing seed on first run.
func (r *EventRepository) Load(ctx context.Context, seed []calendar.Event) error {
	return r.items.Load(ctx, seed)
}

func (r *EventRepository) Create(ctx context.Context, e *calendar.Event) error {
	stored, err := r.items.Append(ctx, *e)
	if err != nil {
		return err
	}
	*e = stored
	return nil
}

func (r *EventRepository) Get(_ context.Context, id int64) (*calendar.Event, error) {
	e, ok := r.items.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *EventRepository) Update(ctx context.Context, e *calendar.Event) error {
	_, err := r.items.Update(ctx, e.ID, func(dst *calendar.Event) error {
		*dst = cloneEvent(*e)
		return nil
	})
	return err
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return r.items.Delete(ctx, id)
}

func (r *EventRepository) List(_ context.Context) ([]calendar.Event, error) {
	return r.items.Filter(nil), nil
}

func (r *EventRepository) ListByProject(_ context.Context, projectID int64) ([]calendar.Event, error) {
	return r.items.Filter(func(e calendar.Event) bool { return e.LinkedTo(projectID) }), nil
}

func (r *EventRepository) ListByOperator(_ context.Context, operatorID int64) ([]calendar.Event, error) {
	return r.items.Filter(func(e calendar.Event) bool { return e.HasOperator(operatorID) }), nil
}

func (r *EventRepository) ListByDay(_ context.Context, day time.Time) ([]calendar.Event, error) {
	loc := day.Location()
	return r.items.Filter(func(e calendar.Event) bool { return calendar.SameDay(e.Start, day, loc) }), nil
}

func (r *EventRepository) ListInRange(_ context.Context, from, to time.Time) ([]calendar.Event, error) {
	return r.items.Filter(func(e calendar.Event) bool {
		return !e.Start.Before(from) && !e.Start.After(to)
	}), nil
}
