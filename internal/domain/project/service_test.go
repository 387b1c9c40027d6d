package project_test

import (
	"context"
	"testing"

	"github.com/rpggio/smmdesk/internal/domain/project"
	"github.com/rpggio/smmdesk/internal/repository"
	"github.com/rpggio/smmdesk/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateRequiresClient(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	clients := &mocks.ClientRepository{}
	clients.On("Exists", ctx, int64(9)).Return(false, nil)

	svc := project.NewService(repo, clients, nil, nil)
	_, err := svc.Create(ctx, project.CreateRequest{Name: "Orphan", ClientID: 9, Status: project.StatusActive})
	require.ErrorIs(t, err, project.ErrUnknownClient)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.MatchedBy(func(p *project.Project) bool {
		return p.Name == "Campagna Sostenibilità" && p.ClientID == 3 && p.OperatorIDs != nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*project.Project).ID = 302
	}).Return(nil)

	clients := &mocks.ClientRepository{}
	clients.On("Exists", ctx, int64(3)).Return(true, nil)

	svc := project.NewService(repo, clients, nil, nil)
	p, err := svc.Create(ctx, project.CreateRequest{
		Name:     "Campagna Sostenibilità",
		ClientID: 3,
		Status:   project.StatusPlanning,
		DueDate:  "20 Lug 2025",
	})
	require.NoError(t, err)
	require.Equal(t, int64(302), p.ID)
	require.Empty(t, p.OperatorIDs)
	repo.AssertExpectations(t)
}

func TestProjectService_CreateValidation(t *testing.T) {
	svc := project.NewService(&mocks.ProjectRepository{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), project.CreateRequest{Name: "", ClientID: 1, Status: project.StatusActive})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(context.Background(), project.CreateRequest{Name: "X", ClientID: 1, Status: "Attivo"})
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestProjectService_UpdateChecksNewClient(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, int64(101)).Return(&project.Project{ID: 101, Name: "Rilancio Sito Web", ClientID: 1, Status: project.StatusInProgress}, nil)

	clients := &mocks.ClientRepository{}
	clients.On("Exists", ctx, int64(7)).Return(false, nil)

	newClient := int64(7)
	svc := project.NewService(repo, clients, nil, nil)
	_, err := svc.Update(ctx, 101, project.Patch{ClientID: &newClient})
	require.ErrorIs(t, err, project.ErrUnknownClient)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProjectService_UpdateMergesPatch(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, int64(101)).Return(&project.Project{ID: 101, Name: "Rilancio Sito Web", ClientID: 1, Status: project.StatusInProgress, OperatorIDs: []int64{1, 2, 3}}, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(p *project.Project) bool {
		return p.Status == project.StatusCompleted && p.CompletedTasks == 15 && len(p.OperatorIDs) == 3
	})).Return(nil)

	status := project.StatusCompleted
	done := 15
	svc := project.NewService(repo, nil, nil, nil)
	p, err := svc.Update(ctx, 101, project.Patch{Status: &status, CompletedTasks: &done})
	require.NoError(t, err)
	require.Equal(t, "Rilancio Sito Web", p.Name)
	repo.AssertExpectations(t)
}

func TestProjectService_DeleteUnknown(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, int64(999)).Return(nil, repository.ErrNotFound)

	svc := project.NewService(repo, nil, nil, nil)
	require.ErrorIs(t, svc.Delete(ctx, 999), project.ErrProjectNotFound)
}

func TestProjectService_ListByClient(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("ListByClient", ctx, int64(1)).Return([]project.Project{{ID: 101, ClientID: 1}}, nil)

	svc := project.NewService(repo, nil, nil, nil)
	got, err := svc.ListByClient(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(101), got[0].ID)
}

func TestProjectService_ListStatusAndSearch(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx).Return([]project.Project{
		{ID: 101, Name: "Rilancio Sito Web", Status: project.StatusInProgress},
		{ID: 102, Name: "Campagna Social Media", Status: project.StatusActive},
		{ID: 201, Name: "Collezione Estiva", Status: project.StatusActive},
	}, nil)

	svc := project.NewService(repo, nil, nil, nil)
	got, err := svc.List(ctx, project.ListFilter{Status: project.StatusActive, Search: "campagna"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(102), got[0].ID)
}
