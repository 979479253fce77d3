// Package db opens the local SQLite response cache and applies its schema.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

const (
	maxPingRetries = 5
	initialWait    = 100 * time.Millisecond
	lockRetryDelay = 50 * time.Millisecond
)

// OpenOptions tunes the connection pool.
type OpenOptions struct {
	MaxOpenConns int
	MaxIdleConns int
	BusyTimeout  time.Duration
	LockTimeout  time.Duration
}

// DefaultOpenOptions returns the settings used by the CLI.
func DefaultOpenOptions() OpenOptions {
	return OpenOptions{
		MaxOpenConns: 4,
		MaxIdleConns: 2,
		BusyTimeout:  5 * time.Second,
		LockTimeout:  10 * time.Second,
	}
}

// DB wraps the cache connection.
type DB struct {
	conn *sql.DB
	path string
}

// Open creates or opens the cache database at path. Migrations run while an
// exclusive file lock next to the database is held, so concurrent processes
// never migrate the same file twice.
func Open(path string, opts OpenOptions) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", path, opts.BusyTimeout.Milliseconds())
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(opts.MaxOpenConns)
	conn.SetMaxIdleConns(opts.MaxIdleConns)
	conn.SetConnMaxLifetime(0)

	db := &DB{conn: conn, path: path}

	ctx := context.Background()
	if err := db.pingWithRetry(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.migrateLocked(ctx, opts.LockTimeout); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying connection pool.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// WithTx executes fn within a transaction. Returning an error rolls back.
func (db *DB) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (db *DB) pingWithRetry(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialWait

	op := func() error { return db.conn.PingContext(ctx) }
	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, maxPingRetries), ctx)); err != nil {
		return fmt.Errorf("failed to ping database after %d retries: %w", maxPingRetries, err)
	}
	return nil
}

func (db *DB) migrateLocked(ctx context.Context, timeout time.Duration) error {
	lock := flock.New(db.path + ".lock")

	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	locked, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("acquire migration lock: timed out after %s", timeout)
	}
	defer func() { _ = lock.Unlock() }()

	if err := migrateUp(ctx, db.conn); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
