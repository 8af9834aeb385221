package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gopress-cms/gopress/internal/repository/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	// A second run must be a no-op.
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if _, err := db.SqlDB.ExecContext(ctx,
		`INSERT INTO users (username, display_name, email, password, bio, avatar, is_active, is_admin, created_at)
		 VALUES ('keeper', '', '', 'x', '', '', 1, 0, CURRENT_TIMESTAMP)`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err = sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate after reopen: %v", err)
	}

	if _, err := db.Users().GetByUsername(ctx, "keeper"); err != nil {
		t.Fatalf("expected user to survive reopen, got %v", err)
	}
}
