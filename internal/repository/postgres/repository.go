// Package postgres stores workclock records in a PostgreSQL kv_store table.
package postgres

import (
	"context"
	_ "embed"
	stderrors "errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workclock/internal/errors"
	"workclock/internal/storage"
)

//go:embed schema.sql
var schemaSQL string

// Options tunes a Repository. Zero timeouts disable the per-call deadline.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// Repository implements storage.Store with pgx. Prefix scans use
// starts_with, which needs PostgreSQL 11 or later.
type Repository struct {
	pool    *pgxpool.Pool
	options Options
}

// New connects to dsn and creates the kv_store table when missing.
func New(ctx context.Context, dsn string, options Options) (*Repository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.NewStorageError("connect to postgres", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewStorageError("ping postgres", err)
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, errors.NewStorageError("create schema", err)
	}
	return &Repository{pool: pool, options: options}, nil
}

func (r *Repository) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, r.options.QueryTimeout)
	defer cancel()

	var value []byte
	err := r.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		return nil, translate("get "+key, key, err)
	}
	return value, nil
}

func (r *Repository) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := withTimeout(ctx, r.options.WriteTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value)
	if err != nil {
		return translate("set "+key, key, err)
	}
	return nil
}

func (r *Repository) GetByPrefix(ctx context.Context, prefix string) ([]storage.Record, error) {
	ctx, cancel := withTimeout(ctx, r.options.QueryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT key, value FROM kv_store
		WHERE starts_with(key, $1)
		ORDER BY key COLLATE "C"`, prefix)
	if err != nil {
		return nil, translate("get by prefix "+prefix, prefix, err)
	}
	defer rows.Close()

	var records []storage.Record
	for rows.Next() {
		var rec storage.Record
		if err := rows.Scan(&rec.Key, &rec.Value); err != nil {
			return nil, translate("scan record", prefix, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("iterate records", prefix, err)
	}
	return records, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func translate(operation, key string, err error) error {
	if stderrors.Is(err, pgx.ErrNoRows) {
		return errors.NewNotFoundError("key", key)
	}
	return errors.NewStorageError(operation, err)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

var _ storage.Store = (*Repository)(nil)
