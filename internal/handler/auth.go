package handler

import (
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/gopress-cms/gopress/internal/domain"
	"github.com/gopress-cms/gopress/internal/service"
	"github.com/gopress-cms/gopress/internal/view"
)

// loginFailedMessage deliberately does not say which of the two fields
// was wrong.
const loginFailedMessage = "username or password is incorrect"

// AuthHandler handles the login and logout routes.
type AuthHandler struct {
	auth         *service.AuthService
	limiter      *service.TokenBucket
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, limiter *service.TokenBucket, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter, cookieSecure: cookieSecure}
}

// HandleLoginForm renders the login form.
// GET /login
func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	view.LoginPage(r.URL.Query().Get("next"), "").Render(r.Context(), w)
}

// HandleLogin processes a login form submission. On success it sets the
// session cookie and redirects to the preserved next URL, or the profile
// page when none was requested.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	next := r.PostFormValue("next")

	if !h.limiter.Allow(limiterKey(username, r)) {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}

	_, token, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			slog.Error("login failed", "username", username)
			w.WriteHeader(http.StatusUnauthorized)
			view.LoginPage(next, loginFailedMessage).Render(r.Context(), w)
			return
		}
		slog.Error("login", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})

	if !safeNext(next) {
		next = "/profile"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// HandleLogout clears the session cookie unconditionally and returns to
// the site root.
// GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func limiterKey(username string, r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return username + "|" + host
}
