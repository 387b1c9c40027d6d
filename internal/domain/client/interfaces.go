package client

import "context"

// Repository provides persistence for clients.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Get(ctx context.Context, id int64) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Client, error)
}

// ProjectCounter reports how many projects reference a client.
type ProjectCounter interface {
	CountByClient(ctx context.Context, clientID int64) (int, error)
}
