// Package memstore keeps each entity collection in memory and mirrors the
// whole collection to a snapshot store after every mutation.
package memstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/rpggio/smmdesk/internal/repository"
)

// Snapshots stores one opaque payload per key.
type Snapshots interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Keys under which each collection is snapshotted.
const (
	KeyClients       = "clients-storage"
	KeyProjects      = "projects-storage"
	KeyOperators     = "operators-storage"
	KeyCollaborators = "collaborators-storage"
	KeyEvents        = "calendar-storage"
	KeyIdeas         = "ideas-storage"
	KeyFeeds         = "feeds-storage"
	KeyMailAccounts  = "email-accounts-storage"
)

// Identity tells a Collection how to read, assign and generate IDs.
type Identity[T any, K comparable] struct {
	Of   func(*T) K
	Set  func(*T, K)
	Next func(existing []T) K
}

// Collection is an ordered, mutex-guarded list of T persisted as one JSON
// snapshot. A mutation is visible only once its snapshot has been written.
type Collection[T any, K comparable] struct {
	mu     sync.RWMutex
	key    string
	store  Snapshots
	id     Identity[T, K]
	clone  func(T) T
	items  []T
	logger *slog.Logger
}

// Option configures a Collection.
type Option[T any, K comparable] func(*Collection[T, K])

// WithClone sets a deep copy function for items holding slices or pointers.
func WithClone[T any, K comparable](clone func(T) T) Option[T, K] {
	return func(c *Collection[T, K]) {
		c.clone = clone
	}
}

// WithLogger sets the collection logger.
func WithLogger[T any, K comparable](logger *slog.Logger) Option[T, K] {
	return func(c *Collection[T, K]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCollection creates an empty collection stored under key.
func NewCollection[T any, K comparable](key string, store Snapshots, id Identity[T, K], opts ...Option[T, K]) *Collection[T, K] {
	c := &Collection[T, K]{
		key:    key,
		store:  store,
		id:     id,
		clone:  func(v T) T { return v },
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the snapshot key.
func (c *Collection[T, K]) Key() string {
	return c.key
}

// Load replaces the in-memory items with the stored snapshot. When no
// snapshot exists yet, seed is installed and written.
func (c *Collection[T, K]) Load(ctx context.Context, seed []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.store.Get(ctx, c.key)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		items := make([]T, 0, len(seed))
		for _, v := range seed {
			items = append(items, c.clone(v))
		}
		if err := c.persistLocked(ctx, items); err != nil {
			return err
		}
		c.items = items
		c.logger.Info("collection seeded", "key", c.key, "items", len(items))
		return nil
	case err != nil:
		return fmt.Errorf("reading snapshot %s: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("decoding snapshot %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	c.logger.Debug("collection loaded", "key", c.key, "items", len(items))
	return nil
}

// Append assigns the next ID to item, appends it and returns the stored copy.
func (c *Collection[T, K]) Append(ctx context.Context, item T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item = c.clone(item)
	c.id.Set(&item, c.id.Next(c.items))

	next := append(slices.Clip(c.items), item)
	if err := c.persistLocked(ctx, next); err != nil {
		var zero T
		return zero, err
	}
	c.items = next
	return c.clone(item), nil
}

// Update applies fn to the item with the given ID. fn works on a copy, so
// an error from fn or from the snapshot write leaves the collection
// unchanged. An unknown ID returns repository.ErrNotFound.
func (c *Collection[T, K]) Update(ctx context.Context, id K, fn func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	i := c.indexLocked(id)
	if i < 0 {
		return zero, repository.ErrNotFound
	}

	item := c.clone(c.items[i])
	if err := fn(&item); err != nil {
		return zero, err
	}
	// the ID is not editable
	c.id.Set(&item, id)

	next := slices.Clone(c.items)
	next[i] = item
	if err := c.persistLocked(ctx, next); err != nil {
		return zero, err
	}
	c.items = next
	return c.clone(item), nil
}

// Delete removes the item with the given ID. An unknown ID returns
// repository.ErrNotFound.
func (c *Collection[T, K]) Delete(ctx context.Context, id K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexLocked(id)
	if i < 0 {
		return repository.ErrNotFound
	}

	next := slices.Delete(slices.Clone(c.items), i, i+1)
	if err := c.persistLocked(ctx, next); err != nil {
		return err
	}
	c.items = next
	return nil
}

// Get returns a copy of the item with the given ID.
func (c *Collection[T, K]) Get(id K) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexLocked(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return c.clone(c.items[i]), true
}

// Filter returns copies of the items matching keep, in insertion order.
// A nil keep matches everything.
func (c *Collection[T, K]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.items))
	for _, v := range c.items {
		if keep == nil || keep(v) {
			out = append(out, c.clone(v))
		}
	}
	return out
}

// Count returns how many items match keep.
func (c *Collection[T, K]) Count(keep func(T) bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, v := range c.items {
		if keep == nil || keep(v) {
			n++
		}
	}
	return n
}

// Len returns the number of items.
func (c *Collection[T, K]) Len() int {
	return c.Count(nil)
}

func (c *Collection[T, K]) indexLocked(id K) int {
	return slices.IndexFunc(c.items, func(v T) bool { return c.id.Of(&v) == id })
}

func (c *Collection[T, K]) persistLocked(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %w", repository.ErrPersist, c.key, err)
	}
	if err := c.store.Put(ctx, c.key, data); err != nil {
		c.logger.Error("snapshot write failed", "key", c.key, "error", err)
		return fmt.Errorf("%w: %s: %w", repository.ErrPersist, c.key, err)
	}
	return nil
}
