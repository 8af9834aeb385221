package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/gopress-cms/gopress/internal/domain"
)

// PublicPage renders a resolved page with its breadcrumb trail.
func PublicPage(page *domain.Page, breadcrumbs []domain.Breadcrumb, nav Nav) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(breadcrumbs) > 0 {
			if _, err := io.WriteString(w, `<nav class="breadcrumbs">`); err != nil {
				return err
			}
			for i, b := range breadcrumbs {
				if i > 0 {
					if _, err := io.WriteString(w, " / "); err != nil {
						return err
					}
				}
				if _, err := fmt.Fprintf(w, `<a href="%s">%s</a>`,
					templ.EscapeString(b.URL), templ.EscapeString(b.Label)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</nav>`); err != nil {
				return err
			}
		}
		return pageBody(page).Render(ctx, w)
	})
	return layout(page.Title, nav, body)
}

// PageViewPage renders a page fetched directly by id (the non-public
// route), without breadcrumbs.
func PageViewPage(page *domain.Page, nav Nav) templ.Component {
	return layout(page.Title, nav, pageBody(page))
}

func pageBody(page *domain.Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if page.ShowTitle {
			if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, templ.EscapeString(page.Title)); err != nil {
				return err
			}
		}
		if !page.IsPublished {
			if _, err := io.WriteString(w, `<p class="draft">This page is not published.</p>`); err != nil {
				return err
			}
		}
		// Content is sanitized on save.
		return raw(page.Content).Render(ctx, w)
	})
}

// PageListPage renders a listing of pages with edit links.
func PageListPage(title string, pages []domain.Page, nav Nav) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1><ul class="pages">`, templ.EscapeString(title)); err != nil {
			return err
		}
		for _, p := range pages {
			status := ""
			if !p.IsPublished {
				status = " (draft)"
			}
			if _, err := fmt.Fprintf(w,
				`<li><a href="/cms/page/%d">%s</a>%s <a href="/cms/page/%d/edit">edit</a></li>`,
				p.ID, templ.EscapeString(p.Title), status, p.ID); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
	return layout(title, nav, body)
}

// PageFormData carries everything the edit form needs: current values,
// parent choices, and per-field validation messages.
type PageFormData struct {
	Page    domain.Page
	Parents []domain.Page
	Errors  map[string]string
	IsNew   bool
}

// PageEditPage renders the create/edit form. Field errors re-render with
// the submitted values preserved.
func PageEditPage(data PageFormData, nav Nav) templ.Component {
	title := "Edit page"
	action := fmt.Sprintf("/cms/page/%d/edit", data.Page.ID)
	if data.IsNew {
		title = "New page"
		action = "/cms/page/new"
	}

	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1><form method="post" action="%s">`,
			templ.EscapeString(title), templ.EscapeString(action)); err != nil {
			return err
		}

		if err := textField(w, "title", "Title", data.Page.Title, data.Errors["title"]); err != nil {
			return err
		}
		if err := textField(w, "slug", "Slug (blank to derive from title)", data.Page.Slug, ""); err != nil {
			return err
		}

		// Parent select; a page cannot be offered as its own parent.
		if _, err := io.WriteString(w, `<label>Parent <select name="parent"><option value="">None</option>`); err != nil {
			return err
		}
		for _, p := range data.Parents {
			if !data.IsNew && p.ID == data.Page.ID {
				continue
			}
			selected := ""
			if data.Page.ParentID != nil && *data.Page.ParentID == p.ID {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%d"%s>%s</option>`,
				p.ID, selected, templ.EscapeString(p.Title)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</select></label>`); err != nil {
			return err
		}

		if err := checkboxField(w, "show_title", "Show title", data.Page.ShowTitle); err != nil {
			return err
		}
		if err := checkboxField(w, "show_nav", "Show in navigation", data.Page.ShowNav); err != nil {
			return err
		}
		if err := checkboxField(w, "is_published", "Published", data.Page.IsPublished); err != nil {
			return err
		}

		if msg := data.Errors["content"]; msg != "" {
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>`, templ.EscapeString(msg)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w,
			`<label>Content <textarea name="content" rows="20">%s</textarea></label>`,
			templ.EscapeString(data.Page.Content)); err != nil {
			return err
		}

		_, err := io.WriteString(w, `<button type="submit">Save</button></form>`)
		return err
	})
	return layout(title, nav, body)
}

func textField(w io.Writer, name, label, value, errMsg string) error {
	if errMsg != "" {
		if _, err := fmt.Fprintf(w, `<p class="error">%s</p>`, templ.EscapeString(errMsg)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, `<label>%s <input type="text" name="%s" value="%s"></label>`,
		templ.EscapeString(label), name, templ.EscapeString(value))
	return err
}

func checkboxField(w io.Writer, name, label string, checked bool) error {
	attr := ""
	if checked {
		attr = " checked"
	}
	_, err := fmt.Fprintf(w, `<label><input type="checkbox" name="%s"%s> %s</label>`,
		name, attr, templ.EscapeString(label))
	return err
}

// PlaceholderPage renders the bare placeholder shown when no root page
// has been seeded yet.
func PlaceholderPage(nav Nav) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p>Default Page</p>`)
		return err
	})
	return layout("Default Page", nav, body)
}
