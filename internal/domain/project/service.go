package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/rpggio/smmdesk/internal/domain/activity"
	"github.com/rpggio/smmdesk/internal/repository"
	"github.com/rpggio/smmdesk/internal/validation"
)

// Service handles project operations.
type Service struct {
	repo     Repository
	clients  ClientChecker
	recorder activity.Recorder
	logger   *slog.Logger
	mu       sync.Locker
}

// NewService creates a new project service.
func NewService(repo Repository, clients ClientChecker, recorder activity.Recorder, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = activity.Nop()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, clients: clients, recorder: recorder, logger: logger, mu: new(sync.Mutex)}
}

// ShareLock makes the service serialize its writes on l. Services whose
// checks read each other's data share one lock.
func (s *Service) ShareLock(l sync.Locker) {
	s.mu = l
}


// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name           string  `json:"name" validate:"notblank"`
	ClientID       int64   `json:"client_id" validate:"gt=0"`
	Objectives     string  `json:"objectives"`
	Budget         string  `json:"budget"`
	StartDate      string  `json:"start_date"`
	DueDate        string  `json:"due_date"`
	Status         Status  `json:"status" validate:"oneof=active in_progress planning completed on_hold cancelled"`
	OperatorIDs    []int64 `json:"operator_ids" validate:"dive,gt=0"`
	CompletedTasks int     `json:"completed_tasks" validate:"gte=0"`
	TotalTasks     int     `json:"total_tasks" validate:"gte=0"`
}

// Patch lists the fields to change. Nil fields are left as they are.
type Patch struct {
	Name           *string  `json:"name,omitempty" validate:"omitempty,notblank"`
	ClientID       *int64   `json:"client_id,omitempty" validate:"omitempty,gt=0"`
	Objectives     *string  `json:"objectives,omitempty"`
	Budget         *string  `json:"budget,omitempty"`
	StartDate      *string  `json:"start_date,omitempty"`
	DueDate        *string  `json:"due_date,omitempty"`
	Status         *Status  `json:"status,omitempty" validate:"omitempty,oneof=active in_progress planning completed on_hold cancelled"`
	OperatorIDs    *[]int64 `json:"operator_ids,omitempty" validate:"omitempty,dive,gt=0"`
	CompletedTasks *int     `json:"completed_tasks,omitempty" validate:"omitempty,gte=0"`
	TotalTasks     *int     `json:"total_tasks,omitempty" validate:"omitempty,gte=0"`
}

func (p Patch) apply(proj *Project) {
	if p.Name != nil {
		proj.Name = strings.TrimSpace(*p.Name)
	}
	if p.ClientID != nil {
		proj.ClientID = *p.ClientID
	}
	if p.Objectives != nil {
		proj.Objectives = *p.Objectives
	}
	if p.Budget != nil {
		proj.Budget = *p.Budget
	}
	if p.StartDate != nil {
		proj.StartDate = *p.StartDate
	}
	if p.DueDate != nil {
		proj.DueDate = *p.DueDate
	}
	if p.Status != nil {
		proj.Status = *p.Status
	}
	if p.OperatorIDs != nil {
		proj.OperatorIDs = slices.Clone(*p.OperatorIDs)
	}
	if p.CompletedTasks != nil {
		proj.CompletedTasks = *p.CompletedTasks
	}
	if p.TotalTasks != nil {
		proj.TotalTasks = *p.TotalTasks
	}
}

// Create adds a project for an existing client.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if err := validation.Struct(req, ErrInvalidInput); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	operators := slices.Clone(req.OperatorIDs)
	if operators == nil {
		operators = []int64{}
	}
	proj := &Project{
		Name:           strings.TrimSpace(req.Name),
		ClientID:       req.ClientID,
		Objectives:     req.Objectives,
		Budget:         req.Budget,
		StartDate:      req.StartDate,
		DueDate:        req.DueDate,
		Status:         req.Status,
		OperatorIDs:    operators,
		CompletedTasks: req.CompletedTasks,
		TotalTasks:     req.TotalTasks,
	}
	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityProject, idString(proj.ID), activity.ActionCreated, "Project "+proj.Name+" created")
	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// Update merges patch into the project.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Project, error) {
	if err := validation.Struct(patch, ErrInvalidInput); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.ClientID != nil && *patch.ClientID != proj.ClientID {
		if err := s.checkClient(ctx, *patch.ClientID); err != nil {
			return nil, err
		}
	}
	patch.apply(proj)

	if err := s.repo.Update(ctx, proj); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityProject, idString(proj.ID), activity.ActionUpdated, "Project "+proj.Name+" updated")
	return proj, nil
}

// Delete removes a project. Events linked to it are left in place.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	proj, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityProject, idString(id), activity.ActionDeleted, "Project "+proj.Name+" deleted")
	return nil
}

// List returns projects matching filter, in insertion order.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Project, error) {
	var (
		all []Project
		err error
	)
	switch {
	case filter.ClientID != 0:
		all, err = s.repo.ListByClient(ctx, filter.ClientID)
	case filter.OperatorID != 0:
		all, err = s.repo.ListByOperator(ctx, filter.OperatorID)
	default:
		all, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]Project, 0, len(all))
	for _, p := range all {
		if filter.OperatorID != 0 && !p.HasOperator(filter.OperatorID) {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// ListByClient returns the projects owned by clientID.
func (s *Service) ListByClient(ctx context.Context, clientID int64) ([]Project, error) {
	return s.List(ctx, ListFilter{ClientID: clientID})
}

// ListByOperator returns the projects operatorID is assigned to.
func (s *Service) ListByOperator(ctx context.Context, operatorID int64) ([]Project, error) {
	return s.List(ctx, ListFilter{OperatorID: operatorID})
}

func (s *Service) checkClient(ctx context.Context, clientID int64) error {
	if s.clients == nil {
		return nil
	}
	ok, err := s.clients.Exists(ctx, clientID)
	if err != nil {
		return fmt.Errorf("checking client: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownClient, clientID)
	}
	return nil
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
