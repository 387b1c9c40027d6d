package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rpggio/smmdesk/internal/domain/client"
	"github.com/rpggio/smmdesk/internal/domain/collaborator"
	"github.com/rpggio/smmdesk/internal/domain/mailbox"
	"github.com/rpggio/smmdesk/internal/repository"
	"github.com/stretchr/testify/require"
)

type fakeSnapshots struct {
	mu   sync.Mutex
	data map[string][]byte
	puts int
	fail error
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{data: map[string][]byte{}}
}

func (f *fakeSnapshots) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.data[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return data, nil
}

func (f *fakeSnapshots) Put(_ context.Context, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.puts++
	f.data[key] = append([]byte(nil), data...)
	return nil
}

func seededClients(t *testing.T, store Snapshots) *ClientRepository {
	t.Helper()
	repo := NewClientRepository(store, nil)
	require.NoError(t, repo.Load(context.Background(), []client.Client{
		{ID: 1, Name: "TechBolt", Active: true},
		{ID: 4, Name: "HealthPlus"},
		{ID: 2, Name: "FashionStyle", Active: true},
	}))
	return repo
}

func TestCollection_LoadSeedsOnlyWhenSnapshotMissing(t *testing.T) {
	ctx := context.Background()
	store := newFakeSnapshots()

	repo := seededClients(t, store)
	require.Contains(t, store.data, KeyClients)
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	// A second process loads the snapshot and ignores its seed.
	again := NewClientRepository(store, nil)
	require.NoError(t, again.Load(ctx, []client.Client{{ID: 9, Name: "Ignored"}}))
	list, err = again.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "TechBolt", list[0].Name)
}

func TestCollection_LoadEmptySnapshot(t *testing.T) {
	store := newFakeSnapshots()
	store.data[KeyClients] = []byte("null")

	repo := NewClientRepository(store, nil)
	require.NoError(t, repo.Load(context.Background(), nil))
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCollection_LoadCorruptSnapshot(t *testing.T) {
	store := newFakeSnapshots()
	store.data[KeyClients] = []byte("{not json")

	repo := NewClientRepository(store, nil)
	require.Error(t, repo.Load(context.Background(), nil))
}

func TestCollection_AppendAssignsGreaterID(t *testing.T) {
	ctx := context.Background()
	repo := seededClients(t, newFakeSnapshots())

	c := &client.Client{ID: 2, Name: "EcoGreen"}
	require.NoError(t, repo.Create(ctx, c))
	require.Equal(t, int64(5), c.ID, "max existing id is 4")

	d := &client.Client{Name: "FoodDelights"}
	require.NoError(t, repo.Create(ctx, d))
	require.Equal(t, int64(6), d.ID)
}

func TestCollection_AppendToEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepository(newFakeSnapshots(), nil)
	require.NoError(t, repo.Load(ctx, nil))

	c := &client.Client{Name: "First"}
	require.NoError(t, repo.Create(ctx, c))
	require.Equal(t, int64(1), c.ID)
}

func TestCollection_UpdateUnknownLeavesCollectionUnchanged(t *testing.T) {
	ctx := context.Background()
	store := newFakeSnapshots()
	repo := seededClients(t, store)
	before, _ := repo.List(ctx)
	puts := store.puts

	err := repo.Update(ctx, &client.Client{ID: 99, Name: "Ghost"})
	require.ErrorIs(t, err, repository.ErrNotFound)

	after, _ := repo.List(ctx)
	require.Equal(t, before, after)
	require.Equal(t, puts, store.puts, "no snapshot write")
}

func TestCollection_DeleteUnknownLeavesCollectionUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := seededClients(t, newFakeSnapshots())
	before, _ := repo.List(ctx)

	require.ErrorIs(t, repo.Delete(ctx, 99), repository.ErrNotFound)

	after, _ := repo.List(ctx)
	require.Equal(t, before, after)
}

func TestCollection_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := seededClients(t, newFakeSnapshots())

	c, err := repo.Get(ctx, 4)
	require.NoError(t, err)
	c.Active = true
	require.NoError(t, repo.Update(ctx, c))

	got, err := repo.Get(ctx, 4)
	require.NoError(t, err)
	require.True(t, got.Active)

	require.NoError(t, repo.Delete(ctx, 4))
	_, err = repo.Get(ctx, 4)
	require.ErrorIs(t, err, repository.ErrNotFound)

	ok, err := repo.Exists(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCollection_FailedWriteRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newFakeSnapshots()
	repo := seededClients(t, store)
	before, _ := repo.List(ctx)

	store.fail = errors.New("disk full")

	err := repo.Create(ctx, &client.Client{Name: "Lost"})
	require.ErrorIs(t, err, repository.ErrPersist)

	c, _ := repo.Get(ctx, 1)
	c.Name = "Renamed"
	require.ErrorIs(t, repo.Update(ctx, c), repository.ErrPersist)
	require.ErrorIs(t, repo.Delete(ctx, 2), repository.ErrPersist)

	after, _ := repo.List(ctx)
	require.Equal(t, before, after)

	// The next id is still computed from the committed items.
	store.fail = nil
	n := &client.Client{Name: "Kept"}
	require.NoError(t, repo.Create(ctx, n))
	require.Equal(t, int64(5), n.ID)
}

func TestCollection_UpdateFuncErrorLeavesItem(t *testing.T) {
	ctx := context.Background()
	coll := NewCollection(KeyClients, newFakeSnapshots(), Identity[client.Client, int64]{
		Of:   func(c *client.Client) int64 { return c.ID },
		Set:  func(c *client.Client, id int64) { c.ID = id },
		Next: SequentialID(func(c *client.Client) int64 { return c.ID }),
	})
	require.NoError(t, coll.Load(ctx, []client.Client{{ID: 1, Name: "TechBolt"}}))

	boom := errors.New("boom")
	_, err := coll.Update(ctx, 1, func(c *client.Client) error {
		c.Name = "Half-applied"
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, ok := coll.Get(1)
	require.True(t, ok)
	require.Equal(t, "TechBolt", got.Name)

	// The callback cannot change the id.
	updated, err := coll.Update(ctx, 1, func(c *client.Client) error {
		c.ID = 42
		c.Name = "TechBolt Srl"
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), updated.ID)
	require.Equal(t, 1, coll.Len())
}

func TestTimestampID_BumpsUntilUnique(t *testing.T) {
	fixed := time.UnixMilli(1747300000000)
	next := TimestampID(func() time.Time { return fixed }, func(c *collaborator.Collaborator) string { return c.ID })

	require.Equal(t, "1747300000000", next(nil))
	require.Equal(t, "1747300000002", next([]collaborator.Collaborator{
		{ID: "1747300000000"},
		{ID: "1747300000001"},
	}))
}

func TestCollaboratorRepository_TimestampIDs(t *testing.T) {
	ctx := context.Background()
	fixed := time.UnixMilli(1747300000000)
	repo := NewCollaboratorRepository(newFakeSnapshots(), func() time.Time { return fixed }, nil)
	require.NoError(t, repo.Load(ctx, []collaborator.Collaborator{{ID: "1", FirstName: "Marco"}}))

	a := &collaborator.Collaborator{FirstName: "Giulia"}
	b := &collaborator.Collaborator{FirstName: "Paolo"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	require.Equal(t, "1747300000000", a.ID)
	require.Equal(t, "1747300000001", b.ID)
}

func TestMailAccountRepository_MilliIDs(t *testing.T) {
	ctx := context.Background()
	fixed := time.UnixMilli(1747300000000)
	store := newFakeSnapshots()
	repo := NewMailAccountRepository(store, func() time.Time { return fixed }, nil)
	require.NoError(t, repo.Load(ctx, []mailbox.Account{{ID: 1, Name: "Mail Aziendale"}}))

	a := &mailbox.Account{Name: "Gmail Personale", Server: "imap.gmail.com"}
	b := &mailbox.Account{Name: "Outlook", Server: "outlook.office365.com"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	require.Equal(t, int64(1747300000000), a.ID)
	require.Equal(t, int64(1747300000001), b.ID)

	require.NoError(t, repo.Delete(ctx, 1))
	require.ErrorIs(t, repo.Delete(ctx, 1), repository.ErrNotFound)

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Gmail Personale", got[0].Name)
	require.Contains(t, string(store.data[KeyMailAccounts]), "outlook.office365.com")
}

func TestSequentialID(t *testing.T) {
	next := SequentialID(func(c *client.Client) int64 { return c.ID })
	require.Equal(t, int64(1), next(nil))
	require.Equal(t, int64(8), next([]client.Client{{ID: 3}, {ID: 7}, {ID: 1}}))
}
