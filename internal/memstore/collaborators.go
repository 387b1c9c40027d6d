package memstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/rpggio/smmdesk/internal/domain/collaborator"
	"github.com/rpggio/smmdesk/internal/repository"
)

// CollaboratorRepository implements collaborator.Repository. IDs are the
// creation time in Unix milliseconds.
type CollaboratorRepository struct {
	items *Collection[collaborator.Collaborator, string]
}

// NewCollaboratorRepository creates a collaborator repository persisted under
// KeyCollaborators. now drives ID generation; nil means time.Now.
func NewCollaboratorRepository(store Snapshots, now func() time.Time, logger *slog.Logger) *CollaboratorRepository {
	of := func(c *collaborator.Collaborator) string { return c.ID }
	return &CollaboratorRepository{
		items: NewCollection(KeyCollaborators, store, Identity[collaborator.Collaborator, string]{
			Of:   of,
			Set:  func(c *collaborator.Collaborator, id string) { c.ID = id },
			Next: TimestampID(now, of),
		}, WithLogger[collaborator.Collaborator, string](logger)),
	}
}

// Load reads the snapshot, installing seed on first run.
func (r *CollaboratorRepository) Load(ctx context.Context, seed []collaborator.Collaborator) error {
	return r.items.Load(ctx, seed)
}

func (r *CollaboratorRepository) Create(ctx context.Context, c *collaborator.Collaborator) error {
	stored, err := r.items.Append(ctx, *c)
	if err != nil {
		return err
	}
	*c = stored
	return nil
}

func (r *CollaboratorRepository) Get(_ context.Context, id string) (*collaborator.Collaborator, error) {
	c, ok := r.items.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *CollaboratorRepository) Update(ctx context.Context, c *collaborator.Collaborator) error {
	_, err := r.items.Update(ctx, c.ID, func(dst *collaborator.Collaborator) error {
		*dst = *c
		return nil
	})
	return err
}

func (r *CollaboratorRepository) Delete(ctx context.Context, id string) error {
	return r.items.Delete(ctx, id)
}

func (r *CollaboratorRepository) List(_ context.Context) ([]collaborator.Collaborator, error) {
	return r.items.Filter(nil), nil
}
