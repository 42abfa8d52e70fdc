package testutil

import (
	"testing"

	"github.com/Neoksnaman/ProTrack/internal/db"
	"github.com/Neoksnaman/ProTrack/internal/repository"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestStore returns an Entity Store over a fresh in-memory database.
func NewTestStore(t *testing.T, opts ...repository.StoreOption) (*repository.Store, *db.DB) {
	t.Helper()
	database := NewTestDB(t)
	return repository.NewStore(database, opts...), database
}
