package operator

import "context"

// Repository provides persistence for operators.
type Repository interface {
	Create(ctx context.Context, o *Operator) error
	Get(ctx context.Context, id int64) (*Operator, error)
	Update(ctx context.Context, o *Operator) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Operator, error)
}

// AssignmentCounter reports how many projects an operator is assigned to.
type AssignmentCounter interface {
	CountByOperator(ctx context.Context, operatorID int64) (int, error)
}
