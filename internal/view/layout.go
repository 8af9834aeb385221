package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Nav carries the session-dependent pieces of the chrome.
type Nav struct {
	Authenticated bool
	IsAdmin       bool
	UserName      string
}

const brand = "GoPress"

// layout wraps a body component in the site chrome. All page components
// in this package are hand-written templ.Component values; escaping goes
// through templ.EscapeString at every interpolation point.
func layout(title string, nav Nav, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>%s · %s</title>`+
				`<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"></script>`+
				`</head><body><header><nav>`,
			templ.EscapeString(title), brand); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<a href="/">%s</a> <a href="/cms/search">Search</a>`, brand); err != nil {
			return err
		}
		if nav.Authenticated {
			if _, err := fmt.Fprintf(w,
				` <a href="/cms/pages">Pages</a> <a href="/cms/page/new">New Page</a> <a href="/profile">%s</a>`,
				templ.EscapeString(nav.UserName)); err != nil {
				return err
			}
			if nav.IsAdmin {
				if _, err := io.WriteString(w, ` <a href="/admin">Admin</a>`); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, ` <a href="/logout">Log out</a>`); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, ` <a href="/login">Log in</a>`); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `</nav></header><main>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// raw renders a pre-sanitized HTML fragment.
func raw(html string) templ.Component {
	return templ.Raw(html)
}
