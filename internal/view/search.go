package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/gopress-cms/gopress/internal/domain"
)

// SearchPage renders the search form and the current results. The input
// re-queries as the user types via a datastar SSE round trip that
// patches the results list in place.
func SearchPage(term string, results []domain.Page, nav Nav) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<h1>Search</h1>`+
				`<form method="get" action="/cms/search" data-signals="{term: '%s'}">`+
				`<input type="search" name="s" value="%s" data-bind-term data-on-input__debounce.300ms="@get('/cms/search/results?s=' + encodeURIComponent($term))">`+
				`<button type="submit">Search</button>`+
				`</form>`,
			templ.EscapeString(term), templ.EscapeString(term)); err != nil {
			return err
		}
		return SearchResultsFragment(term, results).Render(ctx, w)
	})
	return layout("Search", nav, body)
}

// SearchResultsFragment is the patchable results list. The id must stay
// stable so SSE patches can target it.
func SearchResultsFragment(term string, results []domain.Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="search-results">`); err != nil {
			return err
		}
		if term != "" {
			if _, err := fmt.Fprintf(w, `<p>%d result(s) for “%s”</p>`,
				len(results), templ.EscapeString(term)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<ul>`); err != nil {
			return err
		}
		for _, p := range results {
			if _, err := fmt.Fprintf(w, `<li><a href="/cms/page/%d">%s</a></li>`,
				p.ID, templ.EscapeString(p.Title)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul></div>`)
		return err
	})
}
