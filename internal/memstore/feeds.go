package memstore

import (
	"context"
	"log/slog"

	"github.com/rpggio/smmdesk/internal/domain/watch"
)

// FeedRepository implements watch.Repository.
type FeedRepository struct {
	items *Collection[watch.Feed, int64]
}

// NewFeedRepository creates a feed repository persisted under KeyFeeds.
func NewFeedRepository(store Snapshots, logger *slog.Logger) *FeedRepository {
	of := func(f *watch.Feed) int64 { return f.ID }
	return &FeedRepository{
		items: NewCollection(KeyFeeds, store, Identity[watch.Feed, int64]{
			Of:   of,
			Set:  func(f *watch.Feed, id int64) { f.ID = id },
			Next: SequentialID(of),
		}, WithLogger[watch.Feed, int64](logger)),
	}
}

// Load reads the snapshot, installing seed on first run.
func (r *FeedRepository) Load(ctx context.Context, seed []watch.Feed) error {
	return r.items.Load(ctx, seed)
}

func (r *FeedRepository) Create(ctx context.Context, f *watch.Feed) error {
	stored, err := r.items.Append(ctx, *f)
	if err != nil {
		return err
	}
	*f = stored
	return nil
}

func (r *FeedRepository) Delete(ctx context.Context, id int64) error {
	return r.items.Delete(ctx, id)
}

func (r *FeedRepository) List(_ context.Context) ([]watch.Feed, error) {
	return r.items.Filter(nil), nil
}
