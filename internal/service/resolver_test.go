package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gopress-cms/gopress/internal/domain"
	"github.com/gopress-cms/gopress/internal/service"
)

func newTestResolver(t *testing.T) (*service.ResolverService, *service.PageService, int64) {
	t.Helper()
	pages, db, owner := newTestPageService(t)
	return service.NewResolverService(db.Pages()), pages, owner
}

func TestResolver_TopLevel(t *testing.T) {
	resolver, pages, owner := newTestResolver(t)
	ctx := context.Background()

	_, about, _ := seedTree(t, pages, owner)

	page, breadcrumbs, err := resolver.Resolve(ctx, "about")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if page.ID != about.ID {
		t.Fatalf("expected about page %d, got %d", about.ID, page.ID)
	}
	if len(breadcrumbs) != 0 {
		t.Fatalf("expected no breadcrumbs for a top-level page, got %+v", breadcrumbs)
	}
}

func TestResolver_NestedWithBreadcrumbs(t *testing.T) {
	resolver, pages, owner := newTestResolver(t)
	ctx := context.Background()

	_, _, team := seedTree(t, pages, owner)

	page, breadcrumbs, err := resolver.Resolve(ctx, "about/team")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if page.ID != team.ID {
		t.Fatalf("expected team page %d, got %d", team.ID, page.ID)
	}
	if len(breadcrumbs) != 1 {
		t.Fatalf("expected 1 breadcrumb, got %+v", breadcrumbs)
	}
	if breadcrumbs[0].Label != "about" || breadcrumbs[0].URL != "/about" {
		t.Fatalf(`expected breadcrumb ("about", "/about"), got (%q, %q)`,
			breadcrumbs[0].Label, breadcrumbs[0].URL)
	}
}

func TestResolver_NotFound(t *testing.T) {
	resolver, pages, owner := newTestResolver(t)
	ctx := context.Background()

	seedTree(t, pages, owner)

	tests := []string{"nope", "about/nope", "about/team/deeper", "team"}
	for _, path := range tests {
		if _, _, err := resolver.Resolve(ctx, path); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Resolve(%q): expected ErrNotFound, got %v", path, err)
		}
	}
}

func TestResolver_EmptyPathReturnsRoot(t *testing.T) {
	resolver, pages, owner := newTestResolver(t)
	ctx := context.Background()

	root, _, _ := seedTree(t, pages, owner)

	page, breadcrumbs, err := resolver.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if page.ID != root.ID {
		t.Fatalf("expected root page %d, got %d", root.ID, page.ID)
	}
	if len(breadcrumbs) != 0 {
		t.Fatalf("expected no breadcrumbs at root, got %+v", breadcrumbs)
	}
}

func TestResolver_NoRootPage(t *testing.T) {
	resolver, _, _ := newTestResolver(t)

	if _, _, err := resolver.Resolve(context.Background(), ""); !errors.Is(err, domain.ErrNoRootPage) {
		t.Fatalf("expected ErrNoRootPage, got %v", err)
	}
}

func TestResolver_UnpublishedStillResolves(t *testing.T) {
	resolver, pages, owner := newTestResolver(t)
	ctx := context.Background()

	if _, err := pages.Create(ctx, owner, service.PageInput{
		Title: "Draft", Slug: "draft", Content: "<p>wip</p>", IsPublished: false,
	}); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	// The resolver is visibility-blind; the boundary applies the
	// publish filter.
	page, _, err := resolver.Resolve(ctx, "draft")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if page.IsPublished {
		t.Fatal("expected an unpublished page")
	}
}

func TestResolver_DuplicateSiblingsFirstIDWins(t *testing.T) {
	resolver, pages, owner := newTestResolver(t)
	ctx := context.Background()

	first, err := pages.Create(ctx, owner, service.PageInput{
		Title: "First", Slug: "dup", Content: "<p>first</p>", IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := pages.Create(ctx, owner, service.PageInput{
		Title: "Second", Slug: "dup", Content: "<p>second</p>", IsPublished: true,
	}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	page, _, err := resolver.Resolve(ctx, "dup")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if page.ID != first.ID {
		t.Fatalf("expected the oldest duplicate %d to win, got %d", first.ID, page.ID)
	}
}
