package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/rpggio/smmdesk/internal/domain/activity"
	"github.com/rpggio/smmdesk/internal/repository"
	"github.com/rpggio/smmdesk/internal/validation"
)

// Service serves the feed list and the fixed article set. Nothing is fetched.
type Service struct {
	repo     Repository
	articles []Article
	recorder activity.Recorder
	logger   *slog.Logger
}

// NewService creates a web watch service over a fixed set of articles.
func NewService(repo Repository, articles []Article, recorder activity.Recorder, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = activity.Nop()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, articles: slices.Clone(articles), recorder: recorder, logger: logger}
}

// CreateFeedRequest defines feed creation inputs.
type CreateFeedRequest struct {
	Name     string `json:"name" validate:"notblank"`
	URL      string `json:"url" validate:"required,url"`
	Category string `json:"category" validate:"notblank"`
}

// CreateFeed adds a feed.
func (s *Service) CreateFeed(ctx context.Context, req CreateFeedRequest) (*Feed, error) {
	if err := validation.Struct(req, ErrInvalidInput); err != nil {
		return nil, err
	}

	f := &Feed{
		Name:     strings.TrimSpace(req.Name),
		URL:      strings.TrimSpace(req.URL),
		Category: strings.TrimSpace(req.Category),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("creating feed: %w", err)
	}

	s.recorder.Record(ctx, activity.EntityFeed, strconv.FormatInt(f.ID, 10), activity.ActionCreated, "Feed "+f.Name+" created")
	return f, nil
}

// DeleteFeed removes a feed.
func (s *Service) DeleteFeed(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFeedNotFound
		}
		return fmt.Errorf("deleting feed: %w", err)
	}
	s.recorder.Record(ctx, activity.EntityFeed, strconv.FormatInt(id, 10), activity.ActionDeleted, "Feed deleted")
	return nil
}

// ListFeeds returns every feed.
func (s *Service) ListFeeds(ctx context.Context) ([]Feed, error) {
	feeds, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing feeds: %w", err)
	}
	return feeds, nil
}

// Categories returns the distinct feed categories in first-seen order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	feeds, err := s.ListFeeds(ctx)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, f := range feeds {
		if !slices.Contains(out, f.Category) {
			out = append(out, f.Category)
		}
	}
	return out, nil
}

// Articles returns articles whose title or summary contains filter.Search
// and whose feed belongs to filter.Category. An article whose feed is gone
// never matches a category.
func (s *Service) Articles(ctx context.Context, filter ArticleFilter) ([]Article, error) {
	categoryOf := map[string]string{}
	if filter.Category != "" {
		feeds, err := s.ListFeeds(ctx)
		if err != nil {
			return nil, err
		}
		for _, f := range feeds {
			if _, ok := categoryOf[f.Name]; !ok {
				categoryOf[f.Name] = f.Category
			}
		}
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]Article, 0, len(s.articles))
	for _, a := range s.articles {
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Title), search) &&
			!strings.Contains(strings.ToLower(a.Summary), search) {
			continue
		}
		if filter.Category != "" && categoryOf[a.FeedName] != filter.Category {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}
