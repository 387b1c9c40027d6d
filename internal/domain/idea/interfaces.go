package idea

import "context"

// Repository provides persistence for ideas.
type Repository interface {
	Create(ctx context.Context, i *Idea) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Idea, error)
}
