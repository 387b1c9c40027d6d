package mailbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rpggio/smmdesk/internal/domain/activity"
	"github.com/rpggio/smmdesk/internal/repository"
	"github.com/rpggio/smmdesk/internal/validation"
)

// AccountService manages the configured mail accounts.
type AccountService struct {
	repo     AccountRepository
	recorder activity.Recorder
	logger   *slog.Logger
}

// NewAccountService creates a mail account service.
func NewAccountService(repo AccountRepository, recorder activity.Recorder, logger *slog.Logger) *AccountService {
	if recorder == nil {
		recorder = activity.Nop()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AccountService{repo: repo, recorder: recorder, logger: logger}
}

// CreateAccountRequest defines mail account inputs.
type CreateAccountRequest struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Server   string `json:"server" validate:"required,hostname_port|hostname_rfc1123"`
	Username string `json:"username" validate:"notblank"`
}

// Create adds an account. Its ID is the creation time in Unix milliseconds.
func (s *AccountService) Create(ctx context.Context, req CreateAccountRequest) (*Account, error) {
	if err := validation.Struct(req, ErrInvalidInput); err != nil {
		return nil, err
	}

	a := &Account{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Server:   strings.TrimSpace(req.Server),
		Username: strings.TrimSpace(req.Username),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("creating mail account: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityMailAccount, strconv.FormatInt(a.ID, 10), activity.ActionCreated, "Mail account "+a.Name+" created")
	return a, nil
}

// Delete removes an account.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("deleting mail account: %w", err)
	}
	s.recorder.Record(ctx, activity.EntityMailAccount, strconv.FormatInt(id, 10), activity.ActionDeleted, "Mail account deleted")
	return nil
}

// List returns every account in the order it was added.
func (s *AccountService) List(ctx context.Context) ([]Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing mail accounts: %w", err)
	}
	return accounts, nil
}
