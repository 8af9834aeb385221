package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gopress-cms/gopress/internal/domain"
	"github.com/gopress-cms/gopress/internal/service"
	"github.com/gopress-cms/gopress/internal/view"
)

// ProfileHandler serves user profiles, the profile edit form, and
// avatar images.
type ProfileHandler struct {
	auth    *service.AuthService
	avatars *service.AvatarService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(auth *service.AuthService, avatars *service.AvatarService) *ProfileHandler {
	return &ProfileHandler{auth: auth, avatars: avatars}
}

// HandleProfile shows the session user's profile, or another user's by
// id.
// GET /profile
// GET /profile/{id}
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	if s := r.URL.Query().Get("s"); s != "" {
		http.Redirect(w, r, "/cms/search?s="+url.QueryEscape(s), http.StatusFound)
		return
	}

	sess := SessionFromContext(r.Context())
	userID := sess.UserID
	if idStr := r.PathValue("id"); idStr != "" {
		parsed, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		userID = parsed
	}

	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("get user for profile", "id", userID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.ProfilePage(user, user.ID == sess.UserID, navFor(r.Context())).Render(r.Context(), w)
}

// HandleEditForm renders the profile edit form for the session user.
// GET /profile/edit
func (h *ProfileHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	view.ProfileEditPage(user, "", navFor(r.Context())).Render(r.Context(), w)
}

// HandleEdit updates the session user's display name, email, bio, and
// optionally their avatar.
// POST /profile/edit
func (h *ProfileHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := r.ParseMultipartForm(2 << 20); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	user.DisplayName = r.PostFormValue("display_name")
	user.Email = r.PostFormValue("email")
	user.Bio = r.PostFormValue("bio")

	if err := h.auth.UpdateProfile(r.Context(), user); err != nil {
		slog.Error("update profile", "id", user.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if file, _, err := r.FormFile("avatar"); err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		if saveErr := h.avatars.Save(r.Context(), user, data); saveErr != nil {
			if errors.Is(saveErr, domain.ErrInvalidInput) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				view.ProfileEditPage(user, saveErr.Error(), navFor(r.Context())).Render(r.Context(), w)
				return
			}
			slog.Error("save avatar", "id", user.ID, "error", saveErr)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// HandleAvatar serves a user's avatar image.
// GET /avatar/{id}
func (h *ProfileHandler) HandleAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data, err := h.avatars.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("get avatar", "id", userID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Write(data)
}
