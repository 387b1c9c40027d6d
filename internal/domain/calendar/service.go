package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rpggio/smmdesk/internal/domain/activity"
	"github.com/rpggio/smmdesk/internal/repository"
	"github.com/rpggio/smmdesk/internal/validation"
)

// Options controls how days and weeks are computed.
type Options struct {
	Location  *time.Location
	WeekStart time.Weekday
}

// Service handles calendar operations.
type Service struct {
	repo     Repository
	projects ProjectLister
	recorder activity.Recorder
	logger   *slog.Logger
	loc      *time.Location
	weekDay  time.Weekday

	mu sync.Mutex
}

// NewService creates a new calendar service.
func NewService(repo Repository, projects ProjectLister, recorder activity.Recorder, logger *slog.Logger, opts Options) *Service {
	if recorder == nil {
		recorder = activity.Nop()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, projects: projects, recorder: recorder, logger: logger, loc: loc, weekDay: opts.WeekStart}
}

// Location returns the zone calendar days are computed in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// CreateRequest defines event creation inputs.
type CreateRequest struct {
	Title       string     `json:"title" validate:"notblank"`
	Description string     `json:"description"`
	Start       time.Time  `json:"start" validate:"required"`
	End         *time.Time `json:"end" validate:"omitempty"`
	ProjectID   *int64     `json:"project_id" validate:"omitempty,gt=0"`
	OperatorIDs []int64    `json:"operator_ids" validate:"dive,gt=0"`
	Type        EventType  `json:"type" validate:"oneof=meeting deadline publication other"`
	Completed   bool       `json:"completed"`
}

// Patch lists the fields to change. Nil fields are left as they are.
type Patch struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,notblank"`
	Description *string    `json:"description,omitempty"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	ClearEnd    bool       `json:"clear_end,omitempty"`
	ProjectID   *int64     `json:"project_id,omitempty" validate:"omitempty,gte=0"`
	OperatorIDs *[]int64   `json:"operator_ids,omitempty" validate:"omitempty,dive,gt=0"`
	Type        *EventType `json:"type,omitempty" validate:"omitempty,oneof=meeting deadline publication other"`
	Completed   *bool      `json:"completed,omitempty"`
}

func (p Patch) apply(e *Event) {
	if p.Title != nil {
		e.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Start != nil {
		e.Start = *p.Start
	}
	if p.ClearEnd {
		e.End = nil
	} else if p.End != nil {
		end := *p.End
		e.End = &end
	}
	if p.ProjectID != nil {
		// zero unlinks the event
		if *p.ProjectID == 0 {
			e.ProjectID = nil
		} else {
			id := *p.ProjectID
			e.ProjectID = &id
		}
	}
	if p.OperatorIDs != nil {
		e.OperatorIDs = slices.Clone(*p.OperatorIDs)
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Completed != nil {
		e.Completed = *p.Completed
	}
}

// Create adds an event.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Event, error) {
	if err := validation.Struct(req, ErrInvalidInput); err != nil {
		return nil, err
	}
	if req.End != nil && req.End.Before(req.Start) {
		return nil, endBeforeStart()
	}

	operators := slices.Clone(req.OperatorIDs)
	if operators == nil {
		operators = []int64{}
	}
	e := &Event{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
		ProjectID:   req.ProjectID,
		OperatorIDs: operators,
		Type:        req.Type,
		Completed:   req.Completed,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityEvent, idString(e.ID), activity.ActionCreated, "Event "+e.Title+" created")
	return e, nil
}

// Get fetches an event by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Event, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("getting event: %w", err)
	}
	return e, nil
}

// Update merges patch into the event.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Event, error) {
	if err := validation.Struct(patch, ErrInvalidInput); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.apply(e)
	if e.End != nil && e.End.Before(e.Start) {
		return nil, endBeforeStart()
	}

	if err := s.repo.Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("updating event: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityEvent, idString(e.ID), activity.ActionUpdated, "Event "+e.Title+" updated")
	return e, nil
}

// Delete removes an event.
func (s *Service) Delete(ctx context.Context, id int64) error {
	e, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("deleting event: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityEvent, idString(id), activity.ActionDeleted, "Event "+e.Title+" deleted")
	return nil
}

// List returns every event in insertion order.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

// ListByProject returns events linked to projectID.
func (s *Service) ListByProject(ctx context.Context, projectID int64) ([]Event, error) {
	return s.repo.ListByProject(ctx, projectID)
}

// ListByOperator returns events operatorID takes part in.
func (s *Service) ListByOperator(ctx context.Context, operatorID int64) ([]Event, error) {
	return s.repo.ListByOperator(ctx, operatorID)
}

// ListByDay returns events starting on day, compared in the calendar location.
func (s *Service) ListByDay(ctx context.Context, day time.Time) ([]Event, error) {
	return s.repo.ListByDay(ctx, day.In(s.loc))
}

// ListInRange returns events starting within [from, to].
func (s *Service) ListInRange(ctx context.Context, from, to time.Time) ([]Event, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before start", ErrInvalidInput)
	}
	return s.repo.ListInRange(ctx, from, to)
}

// MonthGrid lays out a month in whole weeks with its events.
func (s *Service) MonthGrid(ctx context.Context, year int, month time.Month) (Month, error) {
	if month < time.January || month > time.December {
		return Month{}, fmt.Errorf("%w: month %d", ErrInvalidInput, month)
	}

	grid := BuildMonth(year, month, s.weekDay, s.loc, nil)
	from := grid.Days[0].Date
	last := grid.Days[len(grid.Days)-1].Date
	to := startOfDay(last.Year(), last.Month(), last.Day()+1, s.loc).Add(-time.Nanosecond)

	events, err := s.repo.ListInRange(ctx, from, to)
	if err != nil {
		return Month{}, fmt.Errorf("listing month events: %w", err)
	}
	return BuildMonth(year, month, s.weekDay, s.loc, events), nil
}

// SyncProjectDeadlines adds a deadline event for every project with a
// parseable due date that has no deadline event yet. It returns the events
// it created; a second run creates none.
func (s *Service) SyncProjectDeadlines(ctx context.Context) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	created := []Event{}
	for _, p := range projects {
		if strings.TrimSpace(p.DueDate) == "" {
			continue
		}
		existing, err := s.repo.ListByProject(ctx, p.ID)
		if err != nil {
			return created, fmt.Errorf("listing project events: %w", err)
		}
		if slices.ContainsFunc(existing, func(e Event) bool { return e.Type == TypeDeadline }) {
			continue
		}

		due, ok := ParseDueDate(p.DueDate, s.loc)
		if !ok {
			s.logger.Debug("skipping unparseable due date", "project_id", p.ID, "due_date", p.DueDate)
			continue
		}

		projectID := p.ID
		e, err := s.Create(ctx, CreateRequest{
			Title:       "Deadline: " + p.Name,
			Description: "Due date of project " + p.Name,
			Start:       due,
			ProjectID:   &projectID,
			OperatorIDs: p.OperatorIDs,
			Type:        TypeDeadline,
		})
		if err != nil {
			return created, err
		}
		created = append(created, *e)
	}

	if len(created) > 0 {
		s.logger.Info("project deadlines synced", "created", len(created))
	}
	return created, nil
}

// Upcoming returns at most limit events starting within [now, now+within],
// earliest first. A non-positive limit means no limit.
func (s *Service) Upcoming(ctx context.Context, now time.Time, within time.Duration, limit int) ([]Event, error) {
	events, err := s.repo.ListInRange(ctx, now, now.Add(within))
	if err != nil {
		return nil, fmt.Errorf("listing upcoming events: %w", err)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func endBeforeStart() error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, &validation.FieldErrors{Fields: map[string]string{"end": "gtefield"}})
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
