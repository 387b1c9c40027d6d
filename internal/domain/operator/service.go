package operator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/rpggio/smmdesk/internal/domain/activity"
	"github.com/rpggio/smmdesk/internal/repository"
	"github.com/rpggio/smmdesk/internal/validation"
)

// Service handles operator operations.
type Service struct {
	repo        Repository
	assignments AssignmentCounter
	recorder    activity.Recorder
	logger      *slog.Logger
	mu          sync.Locker
}

// NewService creates a new operator service.
func NewService(repo Repository, assignments AssignmentCounter, recorder activity.Recorder, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = activity.Nop()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, assignments: assignments, recorder: recorder, logger: logger, mu: new(sync.Mutex)}
}

// ShareLock makes the service serialize its writes on l. Services whose
// checks read each other's data share one lock.
func (s *Service) ShareLock(l sync.Locker) {
	s.mu = l
}


// CreateRequest defines operator creation inputs.
type CreateRequest struct {
	FirstName string `json:"first_name" validate:"notblank"`
	LastName  string `json:"last_name" validate:"notblank"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"notblank"`
	Notes     string `json:"notes"`
}

// Patch lists the fields to change. Nil fields are left as they are.
type Patch struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,notblank"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,notblank"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Role      *string `json:"role,omitempty" validate:"omitempty,notblank"`
	Notes     *string `json:"notes,omitempty"`
}

// Create adds an operator with one of the fixed roles.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Operator, error) {
	if err := validation.Struct(req, ErrInvalidInput); err != nil {
		return nil, err
	}
	if err := checkRole(req.Role); err != nil {
		return nil, err
	}

	op := &Operator{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     req.Email,
		Role:      req.Role,
		Notes:     req.Notes,
	}
	if err := s.repo.Create(ctx, op); err != nil {
		return nil, fmt.Errorf("creating operator: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityOperator, idString(op.ID), activity.ActionCreated, "Operator "+op.FullName()+" created")
	return op, nil
}

// Get fetches an operator by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Operator, error) {
	op, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOperatorNotFound
		}
		return nil, fmt.Errorf("getting operator: %w", err)
	}
	return op, nil
}

// Update merges patch into the operator.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Operator, error) {
	if err := validation.Struct(patch, ErrInvalidInput); err != nil {
		return nil, err
	}
	if patch.Role != nil {
		if err := checkRole(*patch.Role); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	op, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.FirstName != nil {
		op.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		op.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Email != nil {
		op.Email = *patch.Email
	}
	if patch.Role != nil {
		op.Role = *patch.Role
	}
	if patch.Notes != nil {
		op.Notes = *patch.Notes
	}

	if err := s.repo.Update(ctx, op); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOperatorNotFound
		}
		return nil, fmt.Errorf("updating operator: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityOperator, idString(op.ID), activity.ActionUpdated, "Operator "+op.FullName()+" updated")
	return op, nil
}

// Delete removes an operator that is not assigned to any project.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	op, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if s.assignments != nil {
		n, err := s.assignments.CountByOperator(ctx, id)
		if err != nil {
			return fmt.Errorf("counting operator assignments: %w", err)
		}
		if n > 0 {
			s.logger.Info("operator delete refused", "operator_id", id, "projects", n)
			return fmt.Errorf("%w: %d project(s) reference operator %d", ErrOperatorAssigned, n, id)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOperatorNotFound
		}
		return fmt.Errorf("deleting operator: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityOperator, idString(id), activity.ActionDeleted, "Operator "+op.FullName()+" deleted")
	return nil
}

// List returns operators whose name, role or email contains search.
func (s *Service) List(ctx context.Context, search string) ([]Operator, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing operators: %w", err)
	}

	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return all, nil
	}
	out := make([]Operator, 0, len(all))
	for _, op := range all {
		for _, field := range []string{op.FirstName, op.LastName, op.Role, op.Email} {
			if strings.Contains(strings.ToLower(field), search) {
				out = append(out, op)
				break
			}
		}
	}
	return out, nil
}

// Roles returns the fixed list of operator roles.
func (s *Service) Roles() []string {
	return Roles()
}

func checkRole(role string) error {
	if IsRole(role) {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, &validation.FieldErrors{Fields: map[string]string{"role": "oneof"}})
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
