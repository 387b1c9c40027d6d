package watch

import "context"

// Repository provides persistence for feeds.
type Repository interface {
	Create(ctx context.Context, f *Feed) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Feed, error)
}
