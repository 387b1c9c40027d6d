package collaborator

import "context"

// Repository provides persistence for collaborators.
type Repository interface {
	Create(ctx context.Context, c *Collaborator) error
	Get(ctx context.Context, id string) (*Collaborator, error)
	Update(ctx context.Context, c *Collaborator) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Collaborator, error)
}
