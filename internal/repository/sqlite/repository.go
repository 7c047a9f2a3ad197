package sqlite

import (
	"context"
	"database/sql"
	"time"

	"workclock/internal/errors"
	"workclock/internal/repository/sqlite/migrations"
	"workclock/internal/storage"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Options tunes a SQLiteRepository. Zero timeouts disable the per-call
// deadline.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// SQLiteRepository implements storage.Store on a single kv_store table.
type SQLiteRepository struct {
	db      *sql.DB
	options Options
	now     func() time.Time
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions opens dbPath, runs pending migrations and applies options.
func NewWithOptions(dbPath string, options Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	if dbPath == MemoryPath {
		// every new connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db, options: options, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Get returns the value stored at key
func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, r.options.QueryTimeout)
	defer cancel()

	query := `
	SELECT key, value, updated_at
	FROM kv_store
	WHERE key = ?`

	row, err := QuerySingle(ctx, r.db, query, ScanKVRow, "key", key, key)
	if err != nil {
		return nil, err
	}
	return row.Value, nil
}

// Set creates or replaces the value at key
func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := withTimeout(ctx, r.options.WriteTimeout)
	defer cancel()

	query := `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	return Execute(ctx, r.db, "set "+key, query, key, string(value), FormatTimeForDB(r.now()))
}

// GetByPrefix returns every record whose key starts with prefix, ordered by key
func (r *SQLiteRepository) GetByPrefix(ctx context.Context, prefix string) ([]storage.Record, error) {
	ctx, cancel := withTimeout(ctx, r.options.QueryTimeout)
	defer cancel()

	// substr compares characters exactly; LIKE would fold ASCII case and
	// treat "_" in user ids as a wildcard.
	query := `
	SELECT key, value, updated_at
	FROM kv_store
	WHERE substr(key, 1, length(?)) = ?
	ORDER BY key ASC`

	rows, err := QueryMultiple(ctx, r.db, query, ScanKVRows, "records", prefix, prefix)
	if err != nil {
		return nil, err
	}

	records := make([]storage.Record, len(rows))
	for i, row := range rows {
		records[i] = storage.Record{Key: row.Key, Value: row.Value}
	}
	return records, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

var _ storage.Store = (*SQLiteRepository)(nil)
