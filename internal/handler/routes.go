package handler

import (
	"net/http"

	"github.com/gopress-cms/gopress/internal/domain"
	"github.com/gopress-cms/gopress/internal/service"
)

// Services bundles everything RegisterRoutes needs to wire the site.
type Services struct {
	Auth         *service.AuthService
	Pages        *service.PageService
	Resolver     *service.ResolverService
	Avatars      *service.AvatarService
	LoginLimiter *service.TokenBucket

	Users       domain.UserRepository
	Groups      domain.GroupRepository
	Memberships domain.MembershipRepository
	Templates   domain.TemplateRepository
	PageRepo    domain.PageRepository

	CookieSecure bool
}

// RegisterRoutes sets up all HTTP routes on the given mux. Every route
// passes through WithSession; the auth and admin gates compose on top
// for the routes that need them.
func RegisterRoutes(mux *http.ServeMux, svc Services) {
	authH := NewAuthHandler(svc.Auth, svc.LoginLimiter, svc.CookieSecure)
	siteH := NewSiteHandler(svc.Resolver)
	pageH := NewPageHandler(svc.Pages, svc.Auth)
	profileH := NewProfileHandler(svc.Auth, svc.Avatars)
	searchH := NewSearchHandler(svc.Pages)
	adminH := NewAdminHandler(svc.Users, svc.Groups, svc.Memberships, svc.Templates, svc.PageRepo, svc.Auth)

	public := func(h http.HandlerFunc) http.Handler {
		return WithSession(svc.Auth, h)
	}
	authed := func(h http.HandlerFunc) http.Handler {
		return WithSession(svc.Auth, RequireAuthenticated(h))
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return WithSession(svc.Auth, RequireAdmin(h))
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.Handle("GET /login", public(authH.HandleLoginForm))
	mux.Handle("POST /login", public(authH.HandleLogin))
	mux.Handle("GET /logout", authed(authH.HandleLogout))

	mux.Handle("GET /profile", authed(profileH.HandleProfile))
	mux.Handle("GET /profile/{id}", authed(profileH.HandleProfile))
	mux.Handle("GET /profile/edit", authed(profileH.HandleEditForm))
	mux.Handle("POST /profile/edit", authed(profileH.HandleEdit))
	mux.Handle("GET /avatar/{id}", public(profileH.HandleAvatar))

	mux.Handle("GET /cms/pages", authed(pageH.HandleList))
	mux.Handle("GET /cms/pages/{userID}", authed(pageH.HandleList))
	mux.Handle("GET /cms/page/new", authed(pageH.HandleNewForm))
	mux.Handle("POST /cms/page/new", authed(pageH.HandleCreate))
	mux.Handle("GET /cms/page/{id}", public(pageH.HandleView))
	mux.Handle("GET /cms/page/{id}/edit", authed(pageH.HandleEditForm))
	mux.Handle("POST /cms/page/{id}/edit", authed(pageH.HandleUpdate))

	mux.Handle("GET /cms/search", public(searchH.HandleSearch))
	mux.Handle("GET /cms/search/results", public(searchH.HandleResults))

	mux.Handle("GET /admin", admin(adminH.HandleIndex))
	mux.Handle("GET /admin/users", admin(adminH.HandleUsers))
	mux.Handle("GET /admin/users/new", admin(adminH.HandleUserNewForm))
	mux.Handle("POST /admin/users/new", admin(adminH.HandleUserCreate))
	mux.Handle("GET /admin/users/{id}/edit", admin(adminH.HandleUserEditForm))
	mux.Handle("POST /admin/users/{id}/edit", admin(adminH.HandleUserUpdate))
	mux.Handle("GET /admin/groups", admin(adminH.HandleGroups))
	mux.Handle("GET /admin/groups/new", admin(adminH.HandleGroupNewForm))
	mux.Handle("POST /admin/groups/new", admin(adminH.HandleGroupCreate))
	mux.Handle("GET /admin/groups/{id}/edit", admin(adminH.HandleGroupEditForm))
	mux.Handle("POST /admin/groups/{id}/edit", admin(adminH.HandleGroupUpdate))
	mux.Handle("POST /admin/groups/{id}/delete", admin(adminH.HandleGroupDelete))
	mux.Handle("GET /admin/memberships", admin(adminH.HandleMemberships))
	mux.Handle("GET /admin/memberships/new", admin(adminH.HandleMembershipNewForm))
	mux.Handle("POST /admin/memberships/new", admin(adminH.HandleMembershipCreate))
	mux.Handle("POST /admin/memberships/{id}/delete", admin(adminH.HandleMembershipDelete))
	mux.Handle("GET /admin/templates", admin(adminH.HandleTemplates))
	mux.Handle("GET /admin/templates/new", admin(adminH.HandleTemplateNewForm))
	mux.Handle("POST /admin/templates/new", admin(adminH.HandleTemplateCreate))
	mux.Handle("GET /admin/templates/{id}/edit", admin(adminH.HandleTemplateEditForm))
	mux.Handle("POST /admin/templates/{id}/edit", admin(adminH.HandleTemplateUpdate))
	mux.Handle("POST /admin/templates/{id}/delete", admin(adminH.HandleTemplateDelete))
	mux.Handle("GET /admin/pages", admin(adminH.HandlePages))
	mux.Handle("POST /admin/pages/{id}/delete", admin(adminH.HandlePageDelete))

	// Catch-all public resolver route; must register last in reading
	// order but the mux picks the most specific pattern regardless.
	mux.Handle("GET /{path...}", public(siteH.HandleResolve))
}
