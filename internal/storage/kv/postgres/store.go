// Package postgres implements the kv.Store port over a single
// kv_records table (key TEXT PRIMARY KEY, value JSONB).
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"kontora/internal/storage/kv"
)

const tableName = "kv_records"

// Store is a PostgreSQL-backed key-value store.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store on an existing connection pool and ensures the
// backing table exists.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key   TEXT PRIMARY KEY,
			value JSONB NOT NULL
		)
	`, tableName))
	if err != nil {
		return fmt.Errorf("create %s: %w", tableName, err)
	}
	return nil
}

// Builder returns a squirrel builder with PostgreSQL placeholder format.
func (s *Store) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Get returns the value at key, or nil when absent.
func (s *Store) Get(ctx context.Context, key string) (json.RawMessage, error) {
	q := s.Builder().
		Select("value").
		From(tableName).
		Where(squirrel.Eq{"key": key}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get: %w", err)
	}

	var value json.RawMessage
	if err := pgxscan.Get(ctx, s.pool, &value, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set writes value at key, inserting or overwriting.
func (s *Store) Set(ctx context.Context, key string, value json.RawMessage) error {
	q := s.Builder().
		Insert(tableName).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build set: %w", err)
	}

	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes the key. Absent keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	q := s.Builder().
		Delete(tableName).
		Where(squirrel.Eq{"key": key})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// List returns every value whose key starts with "{prefix}:", in key order.
func (s *Store) List(ctx context.Context, prefix string) ([]json.RawMessage, error) {
	q := s.Builder().
		Select("value").
		From(tableName).
		Where(squirrel.Like{"key": kv.LikePrefix(prefix)}).
		OrderBy("key")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	values := make([]json.RawMessage, 0)
	if err := pgxscan.Select(ctx, s.pool, &values, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	return values, nil
}

// Keys returns all keys in key order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	q := s.Builder().
		Select("key").
		From(tableName).
		OrderBy("key")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build keys: %w", err)
	}

	keys := make([]string, 0)
	if err := pgxscan.Select(ctx, s.pool, &keys, sql, args...); err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	return keys, nil
}

var _ kv.Store = (*Store)(nil)
