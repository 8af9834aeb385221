package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gopress-cms/gopress/internal/domain"
	"github.com/gopress-cms/gopress/internal/repository/sqlite"
)

func seedOwner(t *testing.T, db *sqlite.DB) int64 {
	t.Helper()
	owner := &domain.User{Username: "owner", Password: "x", IsActive: true}
	if err := db.Users().Create(context.Background(), owner); err != nil {
		t.Fatalf("create owner: %v", err)
	}
	return owner.ID
}

func mustCreatePage(t *testing.T, db *sqlite.DB, page *domain.Page) *domain.Page {
	t.Helper()
	if err := db.Pages().Create(context.Background(), page); err != nil {
		t.Fatalf("create page %q: %v", page.Slug, err)
	}
	return page
}

func TestPageRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedOwner(t, db)

	page := mustCreatePage(t, db, &domain.Page{
		OwnerID: owner, Title: "Home", Slug: "default",
		ShowTitle: true, ShowNav: true, IsPublished: true,
		Content: "<p>home</p>",
	})

	got, err := db.Pages().GetByID(ctx, page.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Slug != "default" || got.ParentID != nil || got.TemplateID != nil {
		t.Fatalf("unexpected page: %+v", got)
	}
	if !got.ShowTitle || !got.ShowNav || !got.IsPublished {
		t.Fatalf("boolean columns lost: %+v", got)
	}

	if _, err := db.Pages().GetByID(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPageRepository_ListChildren(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedOwner(t, db)

	root := mustCreatePage(t, db, &domain.Page{
		OwnerID: owner, Title: "Home", Slug: "default", IsPublished: true, Content: "x",
	})
	child := mustCreatePage(t, db, &domain.Page{
		OwnerID: owner, Title: "About", Slug: "about", ParentID: &root.ID, IsPublished: true, Content: "x",
	})

	// Top-level lookup matches only parent_id IS NULL rows.
	top, err := db.Pages().ListChildren(ctx, nil, "default")
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(top) != 1 || top[0].ID != root.ID {
		t.Fatalf("expected root, got %+v", top)
	}

	none, err := db.Pages().ListChildren(ctx, nil, "about")
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("about is not top-level, got %+v", none)
	}

	kids, err := db.Pages().ListChildren(ctx, &root.ID, "about")
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(kids) != 1 || kids[0].ID != child.ID {
		t.Fatalf("expected about under root, got %+v", kids)
	}
}

func TestPageRepository_ListChildren_OrderedByID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedOwner(t, db)

	// Sibling slugs are not unique; the oldest row must come first.
	first := mustCreatePage(t, db, &domain.Page{
		OwnerID: owner, Title: "First", Slug: "dup", IsPublished: true, Content: "x",
	})
	mustCreatePage(t, db, &domain.Page{
		OwnerID: owner, Title: "Second", Slug: "dup", IsPublished: true, Content: "x",
	})

	rows, err := db.Pages().ListChildren(ctx, nil, "dup")
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID != first.ID {
		t.Fatalf("expected oldest row first, got id %d", rows[0].ID)
	}
}

func TestPageRepository_ListByOwner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedOwner(t, db)

	other := &domain.User{Username: "other", Password: "x", IsActive: true}
	if err := db.Users().Create(ctx, other); err != nil {
		t.Fatalf("create other: %v", err)
	}

	mustCreatePage(t, db, &domain.Page{OwnerID: owner, Title: "A", Slug: "a", Content: "x"})
	mustCreatePage(t, db, &domain.Page{OwnerID: other.ID, Title: "B", Slug: "b", Content: "x"})

	mine, err := db.Pages().ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(mine) != 1 || mine[0].Slug != "a" {
		t.Fatalf("expected only the owner's page, got %+v", mine)
	}
}

func TestPageRepository_SearchByContent_EscapesMetacharacters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedOwner(t, db)

	mustCreatePage(t, db, &domain.Page{
		OwnerID: owner, Title: "Literal", Slug: "literal", IsPublished: true,
		Content: "a 100% literal_match here",
	})
	mustCreatePage(t, db, &domain.Page{
		OwnerID: owner, Title: "Decoy", Slug: "decoy", IsPublished: true,
		Content: "a 100x literalXmatch here",
	})

	results, err := db.Pages().SearchByContent(ctx, "100%")
	if err != nil {
		t.Fatalf("SearchByContent: %v", err)
	}
	if len(results) != 1 || results[0].Slug != "literal" {
		t.Fatalf("%% must match literally, got %+v", results)
	}

	results, err = db.Pages().SearchByContent(ctx, "literal_match")
	if err != nil {
		t.Fatalf("SearchByContent: %v", err)
	}
	if len(results) != 1 || results[0].Slug != "literal" {
		t.Fatalf("_ must match literally, got %+v", results)
	}
}

func TestPageRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedOwner(t, db)

	page := mustCreatePage(t, db, &domain.Page{
		OwnerID: owner, Title: "Draft", Slug: "draft", Content: "x",
	})

	page.Title = "Published"
	page.IsPublished = true
	if err := db.Pages().Update(ctx, page); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := db.Pages().GetByID(ctx, page.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Published" || !got.IsPublished {
		t.Fatalf("update not persisted: %+v", got)
	}

	if err := db.Pages().Delete(ctx, page.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Pages().GetByID(ctx, page.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
