package domain

import (
	"context"
	"time"
)

// RootSlug identifies the site root: the unique page with this slug and
// no parent.
const RootSlug = "default"

// Page is the core content entity. Pages form a tree through ParentID;
// a nil ParentID means top level. Content is a sanitized HTML blob.
type Page struct {
	ID          int64
	OwnerID     int64
	Title       string
	ShowTitle   bool
	ShowNav     bool
	ParentID    *int64
	TemplateID  *int64
	Slug        string
	IsPublished bool
	Content     string
	CreatedAt   time.Time
}

// Breadcrumb is one ancestor in a resolved path: the ancestor's slug and
// the partial URL up to and including it.
type Breadcrumb struct {
	Label string
	URL   string
}

// PageRepository defines persistence operations for pages.
//
// ListChildren returns pages matching (parent, slug) ordered by id, so a
// caller taking the first row gets a deterministic insertion-order
// result. Slug uniqueness within a parent is not enforced at the storage
// level.
type PageRepository interface {
	Create(ctx context.Context, page *Page) error
	GetByID(ctx context.Context, id int64) (*Page, error)
	Update(ctx context.Context, page *Page) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]Page, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Page, error)
	ListChildren(ctx context.Context, parentID *int64, slug string) ([]Page, error)
	// SearchByContent matches pages whose content contains the term,
	// case-insensitively for ASCII.
	SearchByContent(ctx context.Context, term string) ([]Page, error)
}

// Template is a named style template reference. Stored and editable via
// the admin panel; rendering does not consult it yet.
type Template struct {
	ID     int64
	Name   string
	Folder string
}

type TemplateRepository interface {
	Create(ctx context.Context, t *Template) error
	GetByID(ctx context.Context, id int64) (*Template, error)
	List(ctx context.Context) ([]Template, error)
	Update(ctx context.Context, t *Template) error
	Delete(ctx context.Context, id int64) error
}
