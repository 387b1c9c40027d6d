package memstore

import (
	"context"
	"log/slog"

	"github.com/rpggio/smmdesk/internal/domain/client"
	"github.com/rpggio/smmdesk/internal/repository"
)

// ClientRepository implements client.Repository.
type ClientRepository struct {
	items *Collection[client.Client, int64]
}

// NewClientRepository creates a client repository persisted under KeyClients.
func NewClientRepository(store Snapshots, logger *slog.Logger) *ClientRepository {
	of := func(c *client.Client) int64 { return c.ID }
	return &ClientRepository{
		items: NewCollection(KeyClients, store, Identity[client.Client, int64]{
			Of:   of,
			Set:  func(c *client.Client, id int64) { c.ID = id },
			Next: SequentialID(of),
		}, WithLogger[client.Client, int64](logger)),
	}
}

// Load reads the snapshot, installing seed on first run.
func (r *ClientRepository) Load(ctx context.Context, seed []client.Client) error {
	return r.items.Load(ctx, seed)
}

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	stored, err := r.items.Append(ctx, *c)
	if err != nil {
		return err
	}
	*c = stored
	return nil
}

func (r *ClientRepository) Get(_ context.Context, id int64) (*client.Client, error) {
	c, ok := r.items.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	_, err := r.items.Update(ctx, c.ID, func(dst *client.Client) error {
		*dst = *c
		return nil
	})
	return err
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	return r.items.Delete(ctx, id)
}

func (r *ClientRepository) List(_ context.Context) ([]client.Client, error) {
	return r.items.Filter(nil), nil
}

// Exists reports whether a client with the given ID is stored.
func (r *ClientRepository) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.items.Get(id)
	return ok, nil
}
