package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gopress-cms/gopress/internal/domain"
	"github.com/microcosm-cc/bluemonday"
)

// PageInput carries the editable fields of a page. Owner is never part
// of the input; it is fixed at creation time.
type PageInput struct {
	Title       string
	Slug        string
	Content     string
	ShowTitle   bool
	ShowNav     bool
	IsPublished bool
	ParentID    *int64
	TemplateID  *int64
}

// PageService owns page mutation rules: required-field validation,
// blank-slug derivation from the title, content sanitization, and
// rejection of parent assignments that would create a cycle.
type PageService struct {
	pages     domain.PageRepository
	sanitizer *bluemonday.Policy
}

// NewPageService creates a new PageService.
func NewPageService(pages domain.PageRepository) *PageService {
	return &PageService{
		pages:     pages,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Create validates the input and persists a new page owned by ownerID.
func (s *PageService) Create(ctx context.Context, ownerID int64, in PageInput) (*domain.Page, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	page := &domain.Page{
		OwnerID:     ownerID,
		Title:       in.Title,
		ShowTitle:   in.ShowTitle,
		ShowNav:     in.ShowNav,
		ParentID:    in.ParentID,
		TemplateID:  in.TemplateID,
		Slug:        in.Slug,
		IsPublished: in.IsPublished,
		Content:     s.sanitizer.Sanitize(in.Content),
	}
	if page.Slug == "" {
		page.Slug = Slugify(page.Title)
	}

	if err := s.pages.Create(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

// Update overwrites all editable fields of the page. The owner is never
// rewritten. A parent assignment that would make the page its own
// ancestor is rejected with domain.ErrInvalidInput.
func (s *PageService) Update(ctx context.Context, page *domain.Page, in PageInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	if err := s.checkNoCycle(ctx, page.ID, in.ParentID); err != nil {
		return err
	}

	page.Title = in.Title
	page.ShowTitle = in.ShowTitle
	page.ShowNav = in.ShowNav
	page.ParentID = in.ParentID
	page.TemplateID = in.TemplateID
	page.Slug = in.Slug
	page.IsPublished = in.IsPublished
	page.Content = s.sanitizer.Sanitize(in.Content)
	if page.Slug == "" {
		page.Slug = Slugify(page.Title)
	}

	return s.pages.Update(ctx, page)
}

// URL computes the page's canonical URL by walking parent links from the
// page up to the root: "/ancestor-slug/.../page-slug". A cycle in stored
// data is reported as an error rather than looping.
func (s *PageService) URL(ctx context.Context, page *domain.Page) (string, error) {
	segments := []string{page.Slug}
	seen := map[int64]bool{page.ID: true}

	current := page
	for current.ParentID != nil {
		parent, err := s.pages.GetByID(ctx, *current.ParentID)
		if err != nil {
			return "", fmt.Errorf("walk parent chain: %w", err)
		}
		if seen[parent.ID] {
			return "", fmt.Errorf("page %d: parent chain contains a cycle", page.ID)
		}
		seen[parent.ID] = true
		segments = append(segments, parent.Slug)
		current = parent
	}

	// segments were collected leaf-first.
	var b strings.Builder
	for i := len(segments) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(segments[i])
	}
	return b.String(), nil
}

func (s *PageService) GetByID(ctx context.Context, id int64) (*domain.Page, error) {
	return s.pages.GetByID(ctx, id)
}

func (s *PageService) ListAll(ctx context.Context) ([]domain.Page, error) {
	return s.pages.ListAll(ctx)
}

func (s *PageService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Page, error) {
	return s.pages.ListByOwner(ctx, ownerID)
}

// Search returns pages whose content contains the term.
func (s *PageService) Search(ctx context.Context, term string) ([]domain.Page, error) {
	return s.pages.SearchByContent(ctx, term)
}

func validateInput(in PageInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title cannot be blank", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: content cannot be blank", domain.ErrInvalidInput)
	}
	return nil
}

// checkNoCycle walks up from the proposed parent and fails if it reaches
// the page being updated. The storage layer enforces no such constraint.
func (s *PageService) checkNoCycle(ctx context.Context, pageID int64, parentID *int64) error {
	seen := map[int64]bool{}
	for parentID != nil {
		if *parentID == pageID {
			return fmt.Errorf("%w: page cannot be its own ancestor", domain.ErrInvalidInput)
		}
		if seen[*parentID] {
			// Pre-existing cycle above the proposed parent; refuse to
			// attach to it.
			return fmt.Errorf("%w: parent chain contains a cycle", domain.ErrInvalidInput)
		}
		seen[*parentID] = true

		parent, err := s.pages.GetByID(ctx, *parentID)
		if err != nil {
			return fmt.Errorf("walk parent chain: %w", err)
		}
		parentID = parent.ParentID
	}
	return nil
}
