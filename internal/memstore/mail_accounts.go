package memstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/rpggio/smmdesk/internal/domain/mailbox"
)

// MailAccountRepository implements mailbox.AccountRepository. IDs are the
// creation time in Unix milliseconds.
type MailAccountRepository struct {
	items *Collection[mailbox.Account, int64]
}

// NewMailAccountRepository creates a mail account repository persisted under
// KeyMailAccounts. now drives ID generation; nil means time.Now.
func NewMailAccountRepository(store Snapshots, now func() time.Time, logger *slog.Logger) *MailAccountRepository {
	of := func(a *mailbox.Account) int64 { return a.ID }
	return &MailAccountRepository{
		items: NewCollection(KeyMailAccounts, store, Identity[mailbox.Account, int64]{
			Of:   of,
			Set:  func(a *mailbox.Account, id int64) { a.ID = id },
			Next: MilliID(now, of),
		}, WithLogger[mailbox.Account, int64](logger)),
	}
}

// Load reads the snapshot, installing seed on first run.
func (r *MailAccountRepository) Load(ctx context.Context, seed []mailbox.Account) error {
	return r.items.Load(ctx, seed)
}

func (r *MailAccountRepository) Create(ctx context.Context, a *mailbox.Account) error {
	stored, err := r.items.Append(ctx, *a)
	if err != nil {
		return err
	}
	*a = stored
	return nil
}

func (r *MailAccountRepository) Delete(ctx context.Context, id int64) error {
	return r.items.Delete(ctx, id)
}

func (r *MailAccountRepository) List(_ context.Context) ([]mailbox.Account, error) {
	return r.items.Filter(nil), nil
}
