// Package sqlstore implements storage.Store on a relational engine through
// sqlx. SQLite (modernc, no CGO) is the default; PostgreSQL is used when the
// store is opened with the "postgres" driver.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/catalog/internal/storage"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

func init() {
	// modernc registers as "sqlite", which sqlx does not know by default.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Options configures Open.
type Options struct {
	// Driver is DriverSQLite or DriverPostgres.
	Driver string

	// DSN is the driver-specific data source name. See SQLiteDSN.
	DSN string

	// MaxOpenConns limits the pool; 0 means unlimited.
	MaxOpenConns int

	// Allocator overrides the per-category ID allocator.
	Allocator Allocator
}

// Store implements storage.Store using sqlx.
// Each call owns its connection or transaction for its duration.
type Store struct {
	db     *sqlx.DB
	driver string
	alloc  Allocator
}

// Open connects to the database described by opts. It does not run
// migrations; call Migrate.
func Open(ctx context.Context, opts Options) (*Store, error) {
	switch opts.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	db, err := sqlx.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	alloc := opts.Allocator
	if alloc == nil {
		alloc = SequenceAllocator{}
	}

	return &Store{db: db, driver: opts.Driver, alloc: alloc}, nil
}

// New opens (creating if needed) a SQLite database at dbPath and runs
// migrations.
func New(dbPath string) (*Store, error) {
	ctx := context.Background()

	// Create parent directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err := Open(ctx, Options{Driver: DriverSQLite, DSN: SQLiteDSN(dbPath)})
	if err != nil {
		return nil, err
	}
	if _, err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// SQLiteDSN builds a DSN for path that enables foreign keys, waits on a busy
// database instead of failing, and takes the write lock when a transaction
// begins so concurrent creates serialize.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// isUniqueViolation reports whether err is a unique or primary key violation
// from either supported engine.
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}
	return false
}

// wrapWriteError wraps err with op, tagging uniqueness violations.
func wrapWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to %s: %w: %v", op, storage.ErrDuplicate, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
