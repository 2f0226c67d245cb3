package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/graphnav"
)

// PGStore implements graphnav.Store using PostgreSQL via pgx.
type PGStore struct {
	db *pgxpool.Pool
}

var _ graphnav.Store = (*PGStore)(nil)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// New creates a new PGStore backed by the given pgx connection pool.
func New(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// Close closes the underlying pool.
func (s *PGStore) Close() error {
	s.db.Close()
	return nil
}

// isNoRows checks if the error is a "no rows" error from pgx.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isForeignKeyViolation reports whether err is SQLSTATE 23503.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// unavailable marks err as a backing-store failure.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", graphnav.ErrStoreUnavailable, op, err)
}
