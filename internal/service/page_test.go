package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gopress-cms/gopress/internal/domain"
	"github.com/gopress-cms/gopress/internal/repository/sqlite"
	"github.com/gopress-cms/gopress/internal/service"
)

// newTestPageService seeds an owner and returns the service plus the
// owner id.
func newTestPageService(t *testing.T) (*service.PageService, *sqlite.DB, int64) {
	t.Helper()
	db := newTestDB(t)
	owner := &domain.User{Username: "owner", Password: "x", IsActive: true}
	if err := db.Users().Create(context.Background(), owner); err != nil {
		t.Fatalf("create owner: %v", err)
	}
	return service.NewPageService(db.Pages()), db, owner.ID
}

func TestPageService_Create_DerivesSlugFromTitle(t *testing.T) {
	pages, _, owner := newTestPageService(t)
	ctx := context.Background()

	page, err := pages.Create(ctx, owner, service.PageInput{
		Title:       "My First Post",
		Content:     "<p>hello</p>",
		ShowTitle:   true,
		ShowNav:     true,
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if page.Slug != "my-first-post" {
		t.Fatalf("expected slug my-first-post, got %q", page.Slug)
	}
	if page.OwnerID != owner {
		t.Fatalf("expected owner %d, got %d", owner, page.OwnerID)
	}
}

func TestPageService_Create_KeepsExplicitSlug(t *testing.T) {
	pages, _, owner := newTestPageService(t)
	ctx := context.Background()

	page, err := pages.Create(ctx, owner, service.PageInput{
		Title: "Some Title", Slug: "custom", Content: "<p>x</p>", IsPublished: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if page.Slug != "custom" {
		t.Fatalf("expected slug custom, got %q", page.Slug)
	}
}

func TestPageService_Create_Validation(t *testing.T) {
	pages, _, owner := newTestPageService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   service.PageInput
	}{
		{"blank title", service.PageInput{Content: "<p>x</p>"}},
		{"blank content", service.PageInput{Title: "T"}},
		{"whitespace only", service.PageInput{Title: "  ", Content: " "}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := pages.Create(ctx, owner, tc.in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPageService_Create_SanitizesContent(t *testing.T) {
	pages, _, owner := newTestPageService(t)
	ctx := context.Background()

	page, err := pages.Create(ctx, owner, service.PageInput{
		Title:       "Scripted",
		Content:     `<p>fine</p><script>alert("xss")</script>`,
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if strings.Contains(page.Content, "<script>") {
		t.Fatalf("content was not sanitized: %q", page.Content)
	}
	if !strings.Contains(page.Content, "<p>fine</p>") {
		t.Fatalf("benign markup was stripped: %q", page.Content)
	}
}

// seedTree creates root (slug "default"), about under root, and team
// under about; returns them in that order.
func seedTree(t *testing.T, pages *service.PageService, owner int64) (*domain.Page, *domain.Page, *domain.Page) {
	t.Helper()
	ctx := context.Background()

	root, err := pages.Create(ctx, owner, service.PageInput{
		Title: "Home", Slug: "default", Content: "<p>home</p>", IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	about, err := pages.Create(ctx, owner, service.PageInput{
		Title: "About", Slug: "about", Content: "<p>about us</p>", IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create about: %v", err)
	}
	team, err := pages.Create(ctx, owner, service.PageInput{
		Title: "Team", Slug: "team", Content: "<p>the team</p>", ParentID: &about.ID, IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	return root, about, team
}

func TestPageService_URL(t *testing.T) {
	pages, _, owner := newTestPageService(t)
	ctx := context.Background()

	_, about, team := seedTree(t, pages, owner)

	url, err := pages.URL(ctx, team)
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/about/team" {
		t.Fatalf("expected /about/team, got %q", url)
	}

	url, err = pages.URL(ctx, about)
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/about" {
		t.Fatalf("expected /about, got %q", url)
	}
}

func TestPageService_Update_RejectsSelfAncestor(t *testing.T) {
	pages, _, owner := newTestPageService(t)
	ctx := context.Background()

	_, about, team := seedTree(t, pages, owner)

	// about -> team would make about its own ancestor (team is a child
	// of about).
	err := pages.Update(ctx, about, service.PageInput{
		Title: about.Title, Slug: about.Slug, Content: about.Content,
		ParentID: &team.ID, IsPublished: true,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for cyclic parent, got %v", err)
	}

	// Direct self-parenting is rejected too.
	err = pages.Update(ctx, about, service.PageInput{
		Title: about.Title, Slug: about.Slug, Content: about.Content,
		ParentID: &about.ID, IsPublished: true,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self parent, got %v", err)
	}
}

func TestPageService_Update_OverwritesFields(t *testing.T) {
	pages, db, owner := newTestPageService(t)
	ctx := context.Background()

	_, about, _ := seedTree(t, pages, owner)

	err := pages.Update(ctx, about, service.PageInput{
		Title:       "About Us",
		Slug:        "",
		Content:     "<p>rewritten</p>",
		ShowTitle:   false,
		ShowNav:     false,
		IsPublished: false,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	reloaded, err := db.Pages().GetByID(ctx, about.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Title != "About Us" {
		t.Fatalf("title not updated: %q", reloaded.Title)
	}
	if reloaded.Slug != "about-us" {
		t.Fatalf("blank slug should re-derive from title, got %q", reloaded.Slug)
	}
	if reloaded.IsPublished || reloaded.ShowTitle || reloaded.ShowNav {
		t.Fatal("boolean fields not overwritten")
	}
	if reloaded.OwnerID != owner {
		t.Fatal("owner must never change on update")
	}
}

func TestPageService_Search(t *testing.T) {
	pages, _, owner := newTestPageService(t)
	ctx := context.Background()

	seedTree(t, pages, owner)

	results, err := pages.Search(ctx, "the team")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Slug != "team" {
		t.Fatalf("expected the team page, got %+v", results)
	}

	// ASCII case-insensitive.
	results, err = pages.Search(ctx, "ABOUT US")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Slug != "about" {
		t.Fatalf("expected the about page, got %+v", results)
	}

	results, err = pages.Search(ctx, "no such phrase")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %+v", results)
	}
}
