// Package store persists hunts, shinies and the supporting account data in
// SQLite through bun.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/erazemk/shutils/internal/model"
)

// Store is the persistence service. It owns the database handle and keeps no
// other state.
type Store struct {
	db *bun.DB
}

// New returns a store over an open, migrated database.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for read-only reporting queries.
func (s *Store) DB() *bun.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// wrap classifies err for op: domain errors pass through, sql.ErrNoRows
// becomes ErrNotFound and everything else becomes a StoreError.
func wrap(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", op, model.ErrNotFound)
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrOverflow), errors.Is(err, model.ErrStore):
		return err
	default:
		return &model.StoreError{Op: op, Err: err}
	}
}

func notFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, model.ErrNotFound)
}
