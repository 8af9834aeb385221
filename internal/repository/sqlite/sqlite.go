package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gopress-cms/gopress/internal/domain"
	"github.com/gopress-cms/gopress/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database handle and hands out repositories bound to
// it.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for
// use. It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Enable foreign key enforcement.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// Set a reasonable connection pool for SQLite.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies any unapplied schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.SqlDB)
}

// Close closes the underlying database handle.
func (db *DB) Close() error {
	return db.SqlDB.Close()
}

func (db *DB) Users() domain.UserRepository {
	return &UserRepository{db: db.SqlDB}
}

func (db *DB) Pages() domain.PageRepository {
	return &pageRepo{db: db.SqlDB}
}

func (db *DB) Groups() domain.GroupRepository {
	return &groupRepo{db: db.SqlDB}
}

func (db *DB) Memberships() domain.MembershipRepository {
	return &membershipRepo{db: db.SqlDB}
}

func (db *DB) Templates() domain.TemplateRepository {
	return &templateRepo{db: db.SqlDB}
}

func (db *DB) FileStore() domain.FileStore {
	return &fileStore{db: db.SqlDB}
}

// isUniqueConstraintError checks if the error is a SQLite unique
// constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return containsString(msg, "UNIQUE constraint failed") ||
		containsString(msg, "unique constraint")
}

func containsString(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
