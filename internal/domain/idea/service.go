package idea

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rpggio/smmdesk/internal/domain/activity"
	"github.com/rpggio/smmdesk/internal/repository"
	"github.com/rpggio/smmdesk/internal/validation"
)

// Service handles idea bank operations.
type Service struct {
	repo     Repository
	recorder activity.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new idea service.
func NewService(repo Repository, recorder activity.Recorder, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = activity.Nop()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, recorder: recorder, logger: logger, now: time.Now}
}

// CreateRequest defines idea creation inputs. Tags is comma separated.
type CreateRequest struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	Niche       string `json:"niche" validate:"notblank"`
	VideoLink   string `json:"video_link" validate:"omitempty,url"`
	Tags        string `json:"tags"`
}

// ParseTags splits comma separated tags, trimming blanks.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Create adds an idea stamped with the current time.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Idea, error) {
	if err := validation.Struct(req, ErrInvalidInput); err != nil {
		return nil, err
	}

	i := &Idea{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Niche:       strings.TrimSpace(req.Niche),
		VideoLink:   strings.TrimSpace(req.VideoLink),
		Tags:        ParseTags(req.Tags),
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, fmt.Errorf("creating idea: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityIdea, strconv.FormatInt(i.ID, 10), activity.ActionCreated, "Idea "+i.Title+" created")
	return i, nil
}

// Delete removes an idea.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrIdeaNotFound
		}
		return fmt.Errorf("deleting idea: %w", err)
	}
	s.recorder.Record(ctx, activity.EntityIdea, strconv.FormatInt(id, 10), activity.ActionDeleted, "Idea deleted")
	return nil
}

// List returns ideas newest first, keeping those whose title, description,
// niche or any tag contains search.
func (s *Service) List(ctx context.Context, search string) ([]Idea, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing ideas: %w", err)
	}

	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]Idea, 0, len(all))
	for _, i := range all {
		if search == "" || matches(i, search) {
			out = append(out, i)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.After(out[b].CreatedAt)
		}
		return out[a].ID > out[b].ID
	})
	return out, nil
}

func matches(i Idea, search string) bool {
	for _, field := range []string{i.Title, i.Description, i.Niche} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	for _, tag := range i.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}
