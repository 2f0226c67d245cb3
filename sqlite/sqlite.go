// Package sqlite implements graphnav.Store on SQLite through the cgo-free
// modernc.org/sqlite driver. Use ":memory:" for a throwaway database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/meikuraledutech/graphnav"
	moderncsqlite "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// Store implements graphnav.Store using SQLite.
type Store struct {
	db *sql.DB
}

var _ graphnav.Store = (*Store)(nil)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Open creates or opens a SQLite database at path and enables foreign keys.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, unavailable("open", err)
	}

	// One connection: an in-memory database lives and dies with its
	// connection, and the foreign_keys pragma is per connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, unavailable("ping", err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, unavailable("enable foreign keys", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// isForeignKeyViolation matches both the extended result code and the
// primary SQLITE_CONSTRAINT code some connections report.
func isForeignKeyViolation(err error) bool {
	var sqlErr *moderncsqlite.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	code := sqlErr.Code()
	return code == sqlitelib.SQLITE_CONSTRAINT_FOREIGNKEY ||
		(code&0xff == sqlitelib.SQLITE_CONSTRAINT && strings.Contains(sqlErr.Error(), "FOREIGN KEY"))
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", graphnav.ErrStoreUnavailable, op, err)
}
