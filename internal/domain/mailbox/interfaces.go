package mailbox

import "context"

// AccountRepository provides persistence for mail accounts.
type AccountRepository interface {
	Create(ctx context.Context, a *Account) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Account, error)
}
