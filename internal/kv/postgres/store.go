// Package postgres provides a PostgreSQL-backed kv.Store.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/duartefn/moneybook/internal/kv"
)

var _ kv.Store = (*Store)(nil)

type Store struct {
	db *sql.DB
}

// New prepares the kv table and returns a store over db.
func New(db *sql.DB) (*Store, error) {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = $1", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, kv.ErrNotFound
		}

		return nil, fmt.Errorf("getting %q: %w", key, err)
	}

	return value, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("putting %q: %w", key, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = $1", key); err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}

	return nil
}

func (s *Store) List(ctx context.Context, prefix string) (map[string][]byte, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, value FROM kv WHERE key LIKE $1 || '%'", prefix)
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w", prefix, err)
	}
	defer rows.Close()

	out := make(map[string][]byte)

	for rows.Next() {
		var (
			key   string
			value []byte
		)

		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		out[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return out, nil
}
