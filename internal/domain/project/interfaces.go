package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, p *Project) error
	Get(ctx context.Context, id int64) (*Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Project, error)
	ListByClient(ctx context.Context, clientID int64) ([]Project, error)
	ListByOperator(ctx context.Context, operatorID int64) ([]Project, error)
	CountByClient(ctx context.Context, clientID int64) (int, error)
	CountByOperator(ctx context.Context, operatorID int64) (int, error)
}

// ClientChecker confirms a client ID refers to an existing client.
type ClientChecker interface {
	Exists(ctx context.Context, clientID int64) (bool, error)
}
