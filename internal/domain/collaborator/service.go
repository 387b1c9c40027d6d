package collaborator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/smmdesk/internal/domain/activity"
	"github.com/rpggio/smmdesk/internal/repository"
	"github.com/rpggio/smmdesk/internal/validation"
)

// Service handles collaborator operations.
type Service struct {
	repo     Repository
	recorder activity.Recorder
	logger   *slog.Logger
}

// NewService creates a new collaborator service.
func NewService(repo Repository, recorder activity.Recorder, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = activity.Nop()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, recorder: recorder, logger: logger}
}

// Fields holds every editable collaborator field. Used for both create and
// update; update replaces the whole record.
type Fields struct {
	FirstName      string `json:"first_name" validate:"notblank"`
	LastName       string `json:"last_name" validate:"notblank"`
	Email          string `json:"email" validate:"required,email"`
	Specialization string `json:"specialization" validate:"notblank"`
	Phone          string `json:"phone"`
	Notes          string `json:"notes"`
	Active         bool   `json:"active"`
}

func (f Fields) collaborator(id string) *Collaborator {
	return &Collaborator{
		ID:             id,
		FirstName:      strings.TrimSpace(f.FirstName),
		LastName:       strings.TrimSpace(f.LastName),
		Email:          f.Email,
		Specialization: f.Specialization,
		Phone:          f.Phone,
		Notes:          f.Notes,
		Active:         f.Active,
	}
}

// Create adds a collaborator. The returned record carries the new ID.
func (s *Service) Create(ctx context.Context, f Fields) (*Collaborator, error) {
	if err := validation.Struct(f, ErrInvalidInput); err != nil {
		return nil, err
	}

	c := f.collaborator("")
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating collaborator: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityCollaborator, c.ID, activity.ActionCreated, "Collaborator "+c.FirstName+" "+c.LastName+" created")
	return c, nil
}

// Get fetches a collaborator by ID.
func (s *Service) Get(ctx context.Context, id string) (*Collaborator, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCollaboratorNotFound
		}
		return nil, fmt.Errorf("getting collaborator: %w", err)
	}
	return c, nil
}

// Update replaces every field of the collaborator with f.
func (s *Service) Update(ctx context.Context, id string, f Fields) (*Collaborator, error) {
	if err := validation.Struct(f, ErrInvalidInput); err != nil {
		return nil, err
	}

	c := f.collaborator(id)
	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCollaboratorNotFound
		}
		return nil, fmt.Errorf("updating collaborator: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityCollaborator, id, activity.ActionUpdated, "Collaborator "+c.FirstName+" "+c.LastName+" updated")
	return c, nil
}

// Delete removes a collaborator.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCollaboratorNotFound
		}
		return fmt.Errorf("deleting collaborator: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityCollaborator, id, activity.ActionDeleted, "Collaborator "+id+" deleted")
	return nil
}

// List returns collaborators whose name, specialization or email contains search.
func (s *Service) List(ctx context.Context, search string) ([]Collaborator, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing collaborators: %w", err)
	}

	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return all, nil
	}
	out := make([]Collaborator, 0, len(all))
	for _, c := range all {
		for _, field := range []string{c.FirstName, c.LastName, c.Specialization, c.Email} {
			if strings.Contains(strings.ToLower(field), search) {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}
