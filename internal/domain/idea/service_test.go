package idea_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/smmdesk/internal/domain/idea"
	"github.com/rpggio/smmdesk/internal/repository"
	"github.com/rpggio/smmdesk/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseTags(t *testing.T) {
	require.Equal(t, []string{"fitness", "workout", "home"}, idea.ParseTags(" fitness, workout,,home ,"))
	require.Equal(t, []string{}, idea.ParseTags("  "))
}

func TestIdeaService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.IdeaRepository{}
	repo.On("Create", ctx, mock.MatchedBy(func(i *idea.Idea) bool {
		return i.Title == "Ricette veloci" && len(i.Tags) == 2 && !i.CreatedAt.IsZero()
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*idea.Idea).ID = 4
	}).Return(nil)

	svc := idea.NewService(repo, nil, nil)
	i, err := svc.Create(ctx, idea.CreateRequest{
		Title:       "Ricette veloci",
		Description: "Serie di reel da 30 secondi",
		Niche:       "Cucina",
		Tags:        "cucina, reel",
	})
	require.NoError(t, err)
	require.Equal(t, int64(4), i.ID)
	repo.AssertExpectations(t)
}

func TestIdeaService_CreateValidation(t *testing.T) {
	svc := idea.NewService(&mocks.IdeaRepository{}, nil, nil)

	_, err := svc.Create(context.Background(), idea.CreateRequest{Title: "x", Description: "y", Niche: " "})
	require.ErrorIs(t, err, idea.ErrInvalidInput)

	_, err = svc.Create(context.Background(), idea.CreateRequest{Title: "x", Description: "y", Niche: "z", VideoLink: "not a url"})
	require.ErrorIs(t, err, idea.ErrInvalidInput)
}

func TestIdeaService_ListNewestFirstAndSearch(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.IdeaRepository{}
	repo.On("List", ctx).Return([]idea.Idea{
		{ID: 1, Title: "Workout a casa", Niche: "Fitness", Tags: []string{"fitness", "home"}, CreatedAt: time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Ricette di Natale", Niche: "Cucina", Tags: []string{"natale"}, CreatedAt: time.Date(2023, 12, 5, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "Unboxing smartphone", Niche: "Tecnologia", Tags: []string{"tech"}, CreatedAt: time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC)},
	}, nil)

	svc := idea.NewService(repo, nil, nil)
	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, int64(3), all[0].ID)
	require.Equal(t, int64(1), all[2].ID)

	got, err := svc.List(ctx, "HOME")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].ID)
}

func TestIdeaService_DeleteUnknown(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.IdeaRepository{}
	repo.On("Delete", ctx, int64(9)).Return(repository.ErrNotFound)

	svc := idea.NewService(repo, nil, nil)
	require.ErrorIs(t, svc.Delete(ctx, 9), idea.ErrIdeaNotFound)
}
