package memstore

import (
	"context"
	"log/slog"
	"slices"

	"github.com/rpggio/smmdesk/internal/domain/idea"
)

// IdeaRepository implements idea.Repository.
type IdeaRepository struct {
	items *Collection[idea.Idea, int64]
}

// NewIdeaRepository creates an idea repository persisted under KeyIdeas.
func NewIdeaRepository(store Snapshots, logger *slog.Logger) *IdeaRepository {
	of := func(i *idea.Idea) int64 { return i.ID }
	return &IdeaRepository{
		items: NewCollection(KeyIdeas, store, Identity[idea.Idea, int64]{
			Of:   of,
			Set:  func(i *idea.Idea, id int64) { i.ID = id },
			Next: SequentialID(of),
		},
			WithClone[idea.Idea, int64](func(i idea.Idea) idea.Idea {
				i.Tags = slices.Clone(i.Tags)
				return i
			}),
			WithLogger[idea.Idea, int64](logger),
		),
	}
}

// Load reads the snapshot, installing seed on first run.
func (r *IdeaRepository) Load(ctx context.Context, seed []idea.Idea) error {
	return r.items.Load(ctx, seed)
}

func (r *IdeaRepository) Create(ctx context.Context, i *idea.Idea) error {
	stored, err := r.items.Append(ctx, *i)
	if err != nil {
		return err
	}
	*i = stored
	return nil
}

func (r *IdeaRepository) Delete(ctx context.Context, id int64) error {
	return r.items.Delete(ctx, id)
}

func (r *IdeaRepository) List(_ context.Context) ([]idea.Idea, error) {
	return r.items.Filter(nil), nil
}
