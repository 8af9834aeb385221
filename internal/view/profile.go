package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/gopress-cms/gopress/internal/domain"
)

// ProfilePage renders a user profile.
func ProfilePage(user *domain.User, own bool, nav Nav) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, templ.EscapeString(user.CanonicalName())); err != nil {
			return err
		}
		if user.Avatar != "" {
			if _, err := fmt.Fprintf(w, `<img src="/avatar/%d" alt="avatar" class="avatar">`, user.ID); err != nil {
				return err
			}
		}
		if user.Email != "" {
			if _, err := fmt.Fprintf(w, `<p>%s</p>`, templ.EscapeString(user.Email)); err != nil {
				return err
			}
		}
		if user.Bio != "" {
			if _, err := fmt.Fprintf(w, `<p>%s</p>`, templ.EscapeString(user.Bio)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<p><a href="/cms/pages/%d">Pages by %s</a></p>`,
			user.ID, templ.EscapeString(user.CanonicalName())); err != nil {
			return err
		}
		if own {
			if _, err := io.WriteString(w, `<p><a href="/profile/edit">Edit profile</a></p>`); err != nil {
				return err
			}
		}
		return nil
	})
	return layout(user.CanonicalName(), nav, body)
}

// ProfileEditPage renders the profile edit form.
func ProfileEditPage(user *domain.User, errorMsg string, nav Nav) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Edit profile</h1>`); err != nil {
			return err
		}
		if errorMsg != "" {
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>`, templ.EscapeString(errorMsg)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w,
			`<form method="post" action="/profile/edit" enctype="multipart/form-data">`+
				`<label>Display name <input type="text" name="display_name" value="%s"></label>`+
				`<label>Email <input type="email" name="email" value="%s"></label>`+
				`<label>Bio <textarea name="bio" rows="5">%s</textarea></label>`+
				`<label>Avatar <input type="file" name="avatar" accept="image/*"></label>`+
				`<button type="submit">Save</button>`+
				`</form>`,
			templ.EscapeString(user.DisplayName),
			templ.EscapeString(user.Email),
			templ.EscapeString(user.Bio))
		return err
	})
	return layout("Edit profile", nav, body)
}
