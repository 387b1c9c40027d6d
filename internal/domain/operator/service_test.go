package operator_test

import (
	"context"
	"testing"

	"github.com/rpggio/smmdesk/internal/domain/operator"
	"github.com/rpggio/smmdesk/internal/repository/mocks"
	"github.com/rpggio/smmdesk/internal/validation"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOperatorService_CreateRejectsUnknownRole(t *testing.T) {
	svc := operator.NewService(&mocks.OperatorRepository{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), operator.CreateRequest{
		FirstName: "Marco",
		LastName:  "Rossi",
		Email:     "marco.rossi@example.com",
		Role:      "Astronaut",
	})
	require.ErrorIs(t, err, operator.ErrInvalidInput)
	require.Equal(t, []string{"role"}, validation.Fields(err))
}

func TestOperatorService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.OperatorRepository{}
	repo.On("Create", ctx, mock.AnythingOfType("*operator.Operator")).Run(func(args mock.Arguments) {
		args.Get(1).(*operator.Operator).ID = 4
	}).Return(nil)

	svc := operator.NewService(repo, nil, nil, nil)
	op, err := svc.Create(ctx, operator.CreateRequest{
		FirstName: "Sara",
		LastName:  "Conti",
		Email:     "sara.conti@example.com",
		Role:      "Video Editor",
	})
	require.NoError(t, err)
	require.Equal(t, int64(4), op.ID)
	require.Equal(t, "Sara Conti", op.FullName())
}

func TestOperatorService_DeleteGuardedByAssignments(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.OperatorRepository{}
	repo.On("Get", ctx, int64(1)).Return(&operator.Operator{ID: 1, FirstName: "Marco", LastName: "Rossi"}, nil)

	projects := &mocks.ProjectRepository{}
	projects.On("CountByOperator", ctx, int64(1)).Return(4, nil)

	svc := operator.NewService(repo, projects, nil, nil)
	require.ErrorIs(t, svc.Delete(ctx, 1), operator.ErrOperatorAssigned)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestOperatorService_UpdateRole(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.OperatorRepository{}
	repo.On("Get", ctx, int64(2)).Return(&operator.Operator{ID: 2, FirstName: "Laura", LastName: "Bianchi", Role: "Copywriter"}, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(o *operator.Operator) bool { return o.Role == "Content Creator" })).Return(nil)

	role := "Content Creator"
	svc := operator.NewService(repo, nil, nil, nil)
	op, err := svc.Update(ctx, 2, operator.Patch{Role: &role})
	require.NoError(t, err)
	require.Equal(t, "Laura", op.FirstName)

	bad := "Astronaut"
	_, err = svc.Update(ctx, 2, operator.Patch{Role: &bad})
	require.ErrorIs(t, err, operator.ErrInvalidInput)
}

func TestOperatorService_ListSearch(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.OperatorRepository{}
	repo.On("List", ctx).Return([]operator.Operator{
		{ID: 1, FirstName: "Marco", LastName: "Rossi", Role: "Project Manager SMM"},
		{ID: 3, FirstName: "Alessandro", LastName: "Verdi", Role: "Graphic Designer"},
	}, nil)

	svc := operator.NewService(repo, nil, nil, nil)
	got, err := svc.List(ctx, "designer")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(3), got[0].ID)
}

func TestRoles(t *testing.T) {
	roles := operator.Roles()
	require.Len(t, roles, 8)
	roles[0] = "mutated"
	require.True(t, operator.IsRole("Project Manager SMM"))
}
