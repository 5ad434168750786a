package db

import (
	"context"
	"testing"

	"github.com/uptrace/bun"
)

// NewTestDB creates a fresh in-memory SQLite database with all migrations
// applied.
func NewTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := Migrate(context.Background(), sqldb); err != nil {
		sqldb.Close()
		t.Fatalf("migrating test database: %v", err)
	}

	database := NewBun(sqldb)
	t.Cleanup(func() { database.Close() })

	return database
}
