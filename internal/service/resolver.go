package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gopress-cms/gopress/internal/domain"
)

// ResolverService maps a slash-separated URL path onto the page tree.
type ResolverService struct {
	pages domain.PageRepository
}

// NewResolverService creates a new ResolverService.
func NewResolverService(pages domain.PageRepository) *ResolverService {
	return &ResolverService{pages: pages}
}

// Resolve walks the path segment by segment, querying at each step for a
// page whose slug matches the segment under the current parent. It
// returns the resolved page and the breadcrumb trail of its ancestors
// (the resolved page itself is not a breadcrumb).
//
// An empty path resolves to the root page (slug "default", no parent);
// domain.ErrNoRootPage is returned when none exists. Any segment miss
// returns domain.ErrNotFound with no partial result. When duplicate
// (parent, slug) rows exist the lowest id wins, which the repository
// guarantees by ordering.
//
// Resolution is visibility-blind: unpublished pages resolve normally and
// the boundary decides whether the caller may see them.
func (s *ResolverService) Resolve(ctx context.Context, path string) (*domain.Page, []domain.Breadcrumb, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		matches, err := s.pages.ListChildren(ctx, nil, domain.RootSlug)
		if err != nil {
			return nil, nil, fmt.Errorf("look up root page: %w", err)
		}
		if len(matches) == 0 {
			return nil, nil, domain.ErrNoRootPage
		}
		return &matches[0], []domain.Breadcrumb{}, nil
	}

	var (
		parent      *domain.Page
		page        *domain.Page
		breadcrumbs = []domain.Breadcrumb{}
		url         string
	)

	for _, slug := range strings.Split(path, "/") {
		if parent != nil {
			url += "/" + parent.Slug
			breadcrumbs = append(breadcrumbs, domain.Breadcrumb{Label: parent.Slug, URL: url})
		}

		var parentID *int64
		if parent != nil {
			parentID = &parent.ID
		}
		matches, err := s.pages.ListChildren(ctx, parentID, slug)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve segment %q: %w", slug, err)
		}
		if len(matches) == 0 {
			return nil, nil, domain.ErrNotFound
		}

		page = &matches[0]
		parent = page
	}

	return page, breadcrumbs, nil
}
