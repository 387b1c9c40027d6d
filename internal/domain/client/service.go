package client

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

// Service handles client operations.
type Service struct {
	repo     Repository
	projects ProjectCounter
	recorder activity.Recorder
	logger   *slog.Logger
	mu       sync.Locker
}

// NewService creates a new client service.
func NewService(repo Repository, projects ProjectCounter, recorder activity.Recorder, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = activity.Nop()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, projects: projects, recorder: recorder, logger: logger, mu: new(sync.Mutex)}
}

// ShareLock makes the service serialize its writes on l. Services whose
// checks read each other's data share one lock.
func (s *Service) ShareLock(l sync.Locker) {
	s.mu = l
}


// CreateRequest defines client creation inputs.
type CreateRequest struct {
	Name           string `json:"name" validate:"notblank"`
	Sector         string `json:"sector"`
	Contact        string `json:"contact"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	TaxID          string `json:"tax_id"`
	Address        string `json:"address"`
	Notes          string `json:"notes"`
	Contract       string `json:"contract"`
	ContractExpiry string `json:"contract_expiry"`
	Active         bool   `json:"active"`
}

// Patch lists the fields to change. Nil fields are left as they are.
type Patch struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,notblank"`
	Sector         *string `json:"sector,omitempty"`
	Contact        *string `json:"contact,omitempty"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string `json:"phone,omitempty"`
	TaxID          *string `json:"tax_id,omitempty"`
	Address        *string `json:"address,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	Contract       *string `json:"contract,omitempty"`
	ContractExpiry *string `json:"contract_expiry,omitempty"`
	Active         *bool   `json:"active,omitempty"`
}

func (p Patch) apply(c *Client) {
	setString(&c.Name, p.Name)
	setString(&c.Sector, p.Sector)
	setString(&c.Contact, p.Contact)
	setString(&c.Email, p.Email)
	setString(&c.Phone, p.Phone)
	setString(&c.TaxID, p.TaxID)
	setString(&c.Address, p.Address)
	setString(&c.Notes, p.Notes)
	setString(&c.Contract, p.Contract)
	setString(&c.ContractExpiry, p.ContractExpiry)
	if p.Active != nil {
		c.Active = *p.Active
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Create adds a client and returns it with its new ID.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Client, error) {
	if err := validation.Struct(req, ErrInvalidInput); err != nil {
		return nil, err
	}

	c := &Client{
		Name:           strings.TrimSpace(req.Name),
		Sector:         req.Sector,
		Contact:        req.Contact,
		Email:          req.Email,
		Phone:          req.Phone,
		TaxID:          req.TaxID,
		Address:        req.Address,
		Notes:          req.Notes,
		Contract:       req.Contract,
		ContractExpiry: req.ContractExpiry,
		Active:         req.Active,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityClient, idString(c.ID), activity.ActionCreated, "Client "+c.Name+" created")
	return c, nil
}

// Get fetches a client by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Client, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("getting client: %w", err)
	}
	return c, nil
}

// Update merges patch into the client.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Client, error) {
	if err := validation.Struct(patch, ErrInvalidInput); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.apply(c)

	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("updating client: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityClient, idString(c.ID), activity.ActionUpdated, "Client "+c.Name+" updated")
	return c, nil
}

// Delete removes a client that owns no projects.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if s.projects != nil {
		n, err := s.projects.CountByClient(ctx, id)
		if err != nil {
			return fmt.Errorf("counting client projects: %w", err)
		}
		if n > 0 {
			s.logger.Info("client delete refused", "client_id", id, "projects", n)
			return fmt.Errorf("%w: %d project(s) reference client %d", ErrClientHasProjects, n, id)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("deleting client: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityClient, idString(id), activity.ActionDeleted, "Client "+c.Name+" deleted")
	return nil
}

// List returns clients matching filter, in insertion order.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Client, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]Client, 0, len(all))
	for _, c := range all {
		if filter.Active != nil && c.Active != *filter.Active {
			continue
		}
		if search != "" && !matches(c, search) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func matches(c Client, search string) bool {
	for _, field := range []string{c.Name, c.Sector, c.Contact, c.Email} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
