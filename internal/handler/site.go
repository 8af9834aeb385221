package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gopress-cms/gopress/internal/domain"
	"github.com/gopress-cms/gopress/internal/service"
	"github.com/gopress-cms/gopress/internal/view"
)

// SiteHandler serves the public page tree: the catch-all route that maps
// URL paths onto the parent/child slug chain.
type SiteHandler struct {
	resolver *service.ResolverService
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(resolver *service.ResolverService) *SiteHandler {
	return &SiteHandler{resolver: resolver}
}

// HandleResolve resolves the request path to a page and renders it with
// breadcrumbs. A `s` query parameter short-circuits to the search page.
// Unpublished pages are 404 for anonymous sessions; the resolver itself
// does not filter, the check lives here at the boundary.
// GET /{path...}
func (h *SiteHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	if s := r.URL.Query().Get("s"); s != "" {
		http.Redirect(w, r, "/cms/search?s="+url.QueryEscape(s), http.StatusFound)
		return
	}

	page, breadcrumbs, err := h.resolver.Resolve(r.Context(), r.PathValue("path"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoRootPage):
			// Nothing seeded yet; show the bare placeholder.
			view.PlaceholderPage(navFor(r.Context())).Render(r.Context(), w)
		case errors.Is(err, domain.ErrNotFound):
			http.NotFound(w, r)
		default:
			slog.Error("resolve path", "path", r.URL.Path, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	if !page.IsPublished && !SessionFromContext(r.Context()).IsAuthenticated {
		http.NotFound(w, r)
		return
	}

	view.PublicPage(page, breadcrumbs, navFor(r.Context())).Render(r.Context(), w)
}
