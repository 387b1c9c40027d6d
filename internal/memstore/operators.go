package memstore

import (
	"context"
	"log/slog"

	"github.com/rpggio/smmdesk/internal/domain/operator"
	"github.com/rpggio/smmdesk/internal/repository"
)

// OperatorRepository implements operator.Repository.
type OperatorRepository struct {
	items *Collection[operator.Operator, int64]
}

// NewOperatorRepository creates an operator repository persisted under KeyOperators.
func NewOperatorRepository(store Snapshots, logger *slog.Logger) *OperatorRepository {
	of := func(o *operator.Operator) int64 { return o.ID }
	return &OperatorRepository{
		items: NewCollection(KeyOperators, store, Identity[operator.Operator, int64]{
			Of:   of,
			Set:  func(o *operator.Operator, id int64) { o.ID = id },
			Next: SequentialID(of),
		}, WithLogger[operator.Operator, int64](logger)),
	}
}

// Load reads the snapshot, installing seed on first run.
func (r *OperatorRepository) Load(ctx context.Context, seed []operator.Operator) error {
	return r.items.Load(ctx, seed)
}

func (r *OperatorRepository) Create(ctx context.Context, o *operator.Operator) error {
	stored, err := r.items.Append(ctx, *o)
	if err != nil {
		return err
	}
	*o = stored
	return nil
}

func (r *OperatorRepository) Get(_ context.Context, id int64) (*operator.Operator, error) {
	o, ok := r.items.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (r *OperatorRepository) Update(ctx context.Context, o *operator.Operator) error {
	_, err := r.items.Update(ctx, o.ID, func(dst *operator.Operator) error {
		*dst = *o
		return nil
	})
	return err
}

func (r *OperatorRepository) Delete(ctx context.Context, id int64) error {
	return r.items.Delete(ctx, id)
}

func (r *OperatorRepository) List(_ context.Context) ([]operator.Operator, error) {
	return r.items.Filter(nil), nil
}
