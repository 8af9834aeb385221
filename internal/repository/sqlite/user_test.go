package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gopress-cms/gopress/internal/domain"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()
	ctx := context.Background()

	user := &domain.User{
		Username:    "alice",
		DisplayName: "Alice",
		Email:       "alice@example.com",
		Password:    "hashed",
		Bio:         "hi",
		IsActive:    true,
	}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected Create to assign an id")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected Create to set created_at")
	}

	got, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Username != "alice" || got.Email != "alice@example.com" || !got.IsActive {
		t.Fatalf("unexpected user: %+v", got)
	}

	got, err = users.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected id %d, got %d", user.ID, got.ID)
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()
	ctx := context.Background()

	if _, err := users.GetByID(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID: expected ErrNotFound, got %v", err)
	}
	if _, err := users.GetByUsername(ctx, "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByUsername: expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()
	ctx := context.Background()

	if err := users.Create(ctx, &domain.User{Username: "bob", Password: "x", IsActive: true}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := users.Create(ctx, &domain.User{Username: "bob", Password: "y", IsActive: true})
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestUserRepository_Update(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()
	ctx := context.Background()

	user := &domain.User{Username: "carol", Password: "x", IsActive: true}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	user.DisplayName = "Carol C."
	user.Bio = "updated"
	user.IsAdmin = true
	if err := users.Update(ctx, user); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.DisplayName != "Carol C." || got.Bio != "updated" || !got.IsAdmin {
		t.Fatalf("update not persisted: %+v", got)
	}
	// Update never touches the credential column.
	if got.Password != "x" {
		t.Fatalf("Update must not change the password, got %q", got.Password)
	}
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()
	ctx := context.Background()

	user := &domain.User{Username: "dave", Password: "old", IsActive: true}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := users.UpdatePassword(ctx, user.ID, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	got, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Password != "new-hash" {
		t.Fatalf("expected new-hash, got %q", got.Password)
	}
}

func TestUserRepository_List(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()
	ctx := context.Background()

	for _, name := range []string{"u1", "u2", "u3"} {
		if err := users.Create(ctx, &domain.User{Username: name, Password: "x", IsActive: true}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	all, err := users.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 users, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Fatal("expected users ordered by id")
		}
	}
}
