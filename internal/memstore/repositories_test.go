package memstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpggio/smmdesk/internal/domain/calendar"
	"github.com/rpggio/smmdesk/internal/domain/idea"
	"github.com/rpggio/smmdesk/internal/domain/project"
	"github.com/rpggio/smmdesk/internal/domain/watch"
	"github.com/rpggio/smmdesk/internal/sqlite"
	"github.com/stretchr/testify/require"
)

func TestProjectRepository_ForeignKeyFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newFakeSnapshots(), nil)
	require.NoError(t, repo.Load(ctx, []project.Project{
		{ID: 101, ClientID: 1, Name: "Rilancio Sito Web", OperatorIDs: []int64{1, 2, 3}},
		{ID: 201, ClientID: 2, Name: "Collezione Estiva", OperatorIDs: []int64{2, 3}},
	}))

	byClient, err := repo.ListByClient(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byClient, 1)
	require.Equal(t, int64(101), byClient[0].ID)

	byOperator, err := repo.ListByOperator(ctx, 2)
	require.NoError(t, err)
	require.Len(t, byOperator, 2)

	n, err := repo.CountByOperator(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = repo.CountByClient(ctx, 3)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestProjectRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newFakeSnapshots(), nil)
	require.NoError(t, repo.Load(ctx, []project.Project{{ID: 1, ClientID: 1, OperatorIDs: []int64{1}}}))

	p, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	p.OperatorIDs[0] = 99

	again, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, again.OperatorIDs)
}

func TestEventRepository_DayAndRange(t *testing.T) {
	ctx := context.Background()
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	pid := int64(101)
	repo := NewEventRepository(newFakeSnapshots(), nil)
	require.NoError(t, repo.Load(ctx, []calendar.Event{
		{ID: 1, Title: "Kickoff", Start: time.Date(2025, 5, 20, 10, 0, 0, 0, rome), ProjectID: &pid, OperatorIDs: []int64{1, 2}, Type: calendar.TypeMeeting},
		{ID: 2, Title: "Draft", Start: time.Date(2025, 5, 22, 9, 0, 0, 0, rome), ProjectID: &pid, OperatorIDs: []int64{3}, Type: calendar.TypeDeadline},
		{ID: 3, Title: "Late post", Start: time.Date(2025, 5, 20, 23, 30, 0, 0, rome), OperatorIDs: []int64{2}, Type: calendar.TypePublication},
	}))

	day, err := repo.ListByDay(ctx, time.Date(2025, 5, 20, 0, 0, 0, 0, rome))
	require.NoError(t, err)
	require.Len(t, day, 2)

	// 23:30 in Rome is already the 21st in UTC+3 zones
	istanbul, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)
	day, err = repo.ListByDay(ctx, time.Date(2025, 5, 21, 12, 0, 0, 0, istanbul))
	require.NoError(t, err)
	require.Len(t, day, 1)
	require.Equal(t, int64(3), day[0].ID)

	inRange, err := repo.ListInRange(ctx, time.Date(2025, 5, 20, 10, 0, 0, 0, rome), time.Date(2025, 5, 22, 9, 0, 0, 0, rome))
	require.NoError(t, err)
	require.Len(t, inRange, 3, "both bounds inclusive")

	byProject, err := repo.ListByProject(ctx, 101)
	require.NoError(t, err)
	require.Len(t, byProject, 2)

	byOperator, err := repo.ListByOperator(ctx, 2)
	require.NoError(t, err)
	require.Len(t, byOperator, 2)
}

func TestRepositories_SnapshotSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "agency.db")

	db, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	snaps := sqlite.NewSnapshotRepository(db)

	ideas := NewIdeaRepository(snaps, nil)
	require.NoError(t, ideas.Load(ctx, nil))
	i := &idea.Idea{Title: "Fitness at home", Description: "Short tutorials", Niche: "Fitness", Tags: []string{"Fitness"}, CreatedAt: time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, ideas.Create(ctx, i))

	feeds := NewFeedRepository(snaps, nil)
	require.NoError(t, feeds.Load(ctx, []watch.Feed{{ID: 1, Name: "Il Sole 24 Ore", URL: "https://www.ilsole24ore.com/rss/italia.xml", Category: "News"}}))
	require.NoError(t, feeds.Delete(ctx, 1))
	require.NoError(t, db.Close())

	db, err = sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())
	snaps = sqlite.NewSnapshotRepository(db)

	ideas = NewIdeaRepository(snaps, nil)
	require.NoError(t, ideas.Load(ctx, nil))
	list, err := ideas.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Fitness at home", list[0].Title)
	require.True(t, list[0].CreatedAt.Equal(i.CreatedAt))

	feeds = NewFeedRepository(snaps, nil)
	require.NoError(t, feeds.Load(ctx, []watch.Feed{{ID: 1, Name: "Seed again"}}))
	fl, err := feeds.List(ctx)
	require.NoError(t, err)
	require.Empty(t, fl, "deleted seed stays deleted")
}
