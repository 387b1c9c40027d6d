package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/smmdesk/internal/repository"
)

// SnapshotRepository stores whole-collection snapshots keyed by store name.
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Get returns the snapshot stored under key
func (r *SnapshotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %q: %w", key, err)
	}
	return []byte(data), nil
}

// Put replaces the snapshot stored under key
func (r *SnapshotRepository) Put(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO snapshots (key, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, key, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to put snapshot %q: %w", key, err)
	}
	return nil
}

// Keys lists the stored snapshot keys in lexical order
func (r *SnapshotRepository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM snapshots ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}
	return keys, nil
}
