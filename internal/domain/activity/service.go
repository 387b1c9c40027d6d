package activity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// LogActivity logs an activity entry with the current timestamp if missing.
func (s *Service) LogActivity(ctx context.Context, entry *ActivityEntry) error {
	if entry == nil || entry.EntityType == "" || strings.TrimSpace(entry.EntityID) == "" || entry.Action == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// Record logs a mutation. Failures are logged and otherwise ignored: the
// mutation itself has already been applied and snapshotted.
func (s *Service) Record(ctx context.Context, entityType EntityType, entityID string, action Action, summary string) {
	entry := &ActivityEntry{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Summary:    summary,
	}
	if err := s.LogActivity(ctx, entry); err != nil {
		s.logger.Warn("activity not recorded", "entity_type", entityType, "entity_id", entityID, "action", action, "error", err)
	}
}

// GetRecentActivity lists activity entries with filtering, newest first.
func (s *Service) GetRecentActivity(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error) {
	return s.repo.List(ctx, opts)
}
