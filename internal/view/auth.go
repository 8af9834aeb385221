package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// LoginPage renders the login form. errorMsg is shown above the form
// when non-empty; next is carried through as a hidden field for
// post-login redirect.
func LoginPage(next, errorMsg string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Log in</h1>`); err != nil {
			return err
		}
		if errorMsg != "" {
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>`, templ.EscapeString(errorMsg)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w,
			`<form method="post" action="/login">`+
				`<input type="hidden" name="next" value="%s">`+
				`<label>Username <input type="text" name="username" required></label>`+
				`<label>Password <input type="password" name="password" required></label>`+
				`<button type="submit">Log in</button>`+
				`</form>`,
			templ.EscapeString(next))
		return err
	})
	return layout("Log in", Nav{}, body)
}
