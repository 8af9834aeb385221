package handler

import (
	"log/slog"
	"net/http"

	"github.com/gopress-cms/gopress/internal/domain"
	"github.com/gopress-cms/gopress/internal/service"
	"github.com/gopress-cms/gopress/internal/view"
	datastar "github.com/starfederation/datastar-go/datastar"
)

// SearchHandler serves content search: a full results page plus an SSE
// endpoint that live-patches the results list as the user types.
type SearchHandler struct {
	pages *service.PageService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(pages *service.PageService) *SearchHandler {
	return &SearchHandler{pages: pages}
}

// HandleSearch renders the search page with results for the `s` term.
// GET /cms/search
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("s")
	results, err := h.search(r, term)
	if err != nil {
		slog.Error("search pages", "term", term, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view.SearchPage(term, results, navFor(r.Context())).Render(r.Context(), w)
}

// HandleResults streams a patched results fragment via SSE.
// GET /cms/search/results
func (h *SearchHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("s")
	results, err := h.search(r, term)
	if err != nil {
		slog.Error("search pages", "term", term, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	sse.PatchElementTempl(
		view.SearchResultsFragment(term, results),
		datastar.WithSelectorID("search-results"),
	)
}

func (h *SearchHandler) search(r *http.Request, term string) ([]domain.Page, error) {
	if term == "" {
		return nil, nil
	}
	return h.pages.Search(r.Context(), term)
}
