package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// AdminRow is one table row in an admin listing, with optional edit and
// delete actions.
type AdminRow struct {
	Cells     []string
	EditURL   string
	DeleteURL string
}

// AdminField describes one input in a generated admin form.
type AdminField struct {
	Name    string
	Label   string
	Type    string // "text", "password", "checkbox", "textarea", "select"
	Value   string
	Checked bool
	Options []AdminOption
}

// AdminOption is a select choice.
type AdminOption struct {
	Value    string
	Label    string
	Selected bool
}

// AdminListPage renders a generic table browser for one model.
func AdminListPage(title string, tabs []string, headers []string, rows []AdminRow, newURL string, nav Nav) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := adminTabs(w, tabs); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, templ.EscapeString(title)); err != nil {
			return err
		}
		if newURL != "" {
			if _, err := fmt.Fprintf(w, `<p><a href="%s">New</a></p>`, templ.EscapeString(newURL)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<table><thead><tr>`); err != nil {
			return err
		}
		for _, h := range headers {
			if _, err := fmt.Fprintf(w, `<th>%s</th>`, templ.EscapeString(h)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<th></th></tr></thead><tbody>`); err != nil {
			return err
		}

		for _, row := range rows {
			if _, err := io.WriteString(w, `<tr>`); err != nil {
				return err
			}
			for _, cell := range row.Cells {
				if _, err := fmt.Fprintf(w, `<td>%s</td>`, templ.EscapeString(cell)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `<td>`); err != nil {
				return err
			}
			if row.EditURL != "" {
				if _, err := fmt.Fprintf(w, `<a href="%s">edit</a> `, templ.EscapeString(row.EditURL)); err != nil {
					return err
				}
			}
			if row.DeleteURL != "" {
				if _, err := fmt.Fprintf(w,
					`<form method="post" action="%s" class="inline"><button type="submit">delete</button></form>`,
					templ.EscapeString(row.DeleteURL)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</td></tr>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
	return layout(title, nav, body)
}

// AdminFormPage renders a generic create/edit form for one record.
func AdminFormPage(title, action string, fields []AdminField, errorMsg string, nav Nav) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, templ.EscapeString(title)); err != nil {
			return err
		}
		if errorMsg != "" {
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>`, templ.EscapeString(errorMsg)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<form method="post" action="%s">`, templ.EscapeString(action)); err != nil {
			return err
		}

		for _, f := range fields {
			if err := adminField(w, f); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `<button type="submit">Save</button></form>`)
		return err
	})
	return layout(title, nav, body)
}

func adminField(w io.Writer, f AdminField) error {
	switch f.Type {
	case "checkbox":
		attr := ""
		if f.Checked {
			attr = " checked"
		}
		_, err := fmt.Fprintf(w, `<label><input type="checkbox" name="%s"%s> %s</label>`,
			f.Name, attr, templ.EscapeString(f.Label))
		return err
	case "textarea":
		_, err := fmt.Fprintf(w, `<label>%s <textarea name="%s" rows="10">%s</textarea></label>`,
			templ.EscapeString(f.Label), f.Name, templ.EscapeString(f.Value))
		return err
	case "select":
		if _, err := fmt.Fprintf(w, `<label>%s <select name="%s">`,
			templ.EscapeString(f.Label), f.Name); err != nil {
			return err
		}
		for _, opt := range f.Options {
			selected := ""
			if opt.Selected {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
				templ.EscapeString(opt.Value), selected, templ.EscapeString(opt.Label)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</select></label>`)
		return err
	default:
		_, err := fmt.Fprintf(w, `<label>%s <input type="%s" name="%s" value="%s"></label>`,
			templ.EscapeString(f.Label), f.Type, f.Name, templ.EscapeString(f.Value))
		return err
	}
}

func adminTabs(w io.Writer, tabs []string) error {
	if _, err := io.WriteString(w, `<nav class="admin-tabs">`); err != nil {
		return err
	}
	for _, tab := range tabs {
		if _, err := fmt.Fprintf(w, `<a href="/admin/%s">%s</a> `, tab, templ.EscapeString(tab)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</nav>`)
	return err
}
