package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gopress-cms/gopress/internal/domain"
	"github.com/gopress-cms/gopress/internal/service"
	"github.com/gopress-cms/gopress/internal/view"
)

// adminTables drives the tab bar; one entry per browsable model.
var adminTables = []string{"users", "groups", "memberships", "templates", "pages"}

// AdminHandler is the table browser/editor over the stored models. Every
// route here sits behind RequireAdmin.
type AdminHandler struct {
	users       domain.UserRepository
	groups      domain.GroupRepository
	memberships domain.MembershipRepository
	templates   domain.TemplateRepository
	pages       domain.PageRepository
	auth        *service.AuthService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(users domain.UserRepository, groups domain.GroupRepository, memberships domain.MembershipRepository, templates domain.TemplateRepository, pages domain.PageRepository, auth *service.AuthService) *AdminHandler {
	return &AdminHandler{
		users:       users,
		groups:      groups,
		memberships: memberships,
		templates:   templates,
		pages:       pages,
		auth:        auth,
	}
}

// HandleIndex lands on the user table.
// GET /admin
func (h *AdminHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/users", http.StatusFound)
}

// --- users ---

// HandleUsers lists all users.
// GET /admin/users
func (h *AdminHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.fail(w, "list users", err)
		return
	}

	rows := make([]view.AdminRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, view.AdminRow{
			Cells: []string{
				strconv.FormatInt(u.ID, 10), u.Username, u.DisplayName, u.Email,
				boolCell(u.IsActive), boolCell(u.IsAdmin),
			},
			EditURL: fmt.Sprintf("/admin/users/%d/edit", u.ID),
		})
	}
	view.AdminListPage("Users", adminTables,
		[]string{"ID", "Username", "Display name", "Email", "Active", "Admin"},
		rows, "/admin/users/new", navFor(r.Context())).Render(r.Context(), w)
}

// HandleUserNewForm renders the user creation form.
// GET /admin/users/new
func (h *AdminHandler) HandleUserNewForm(w http.ResponseWriter, r *http.Request) {
	h.renderUserForm(w, r, &domain.User{IsActive: true}, true, "")
}

// HandleUserCreate creates a user with a hashed credential.
// POST /admin/users/new
func (h *AdminHandler) HandleUserCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	user, err := h.auth.CreateUser(r.Context(),
		r.PostFormValue("username"), r.PostFormValue("password"),
		r.PostFormValue("is_admin") == "on")
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrDuplicateUsername) {
			h.renderUserForm(w, r, &domain.User{
				Username:    r.PostFormValue("username"),
				DisplayName: r.PostFormValue("display_name"),
				Email:       r.PostFormValue("email"),
				IsActive:    r.PostFormValue("is_active") == "on",
				IsAdmin:     r.PostFormValue("is_admin") == "on",
			}, true, err.Error())
			return
		}
		h.fail(w, "create user", err)
		return
	}

	user.DisplayName = r.PostFormValue("display_name")
	user.Email = r.PostFormValue("email")
	user.IsActive = r.PostFormValue("is_active") == "on"
	if err := h.users.Update(r.Context(), user); err != nil {
		h.fail(w, "update created user", err)
		return
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// HandleUserEditForm renders the user edit form.
// GET /admin/users/{id}/edit
func (h *AdminHandler) HandleUserEditForm(w http.ResponseWriter, r *http.Request) {
	user, ok := h.userFromPath(w, r)
	if !ok {
		return
	}
	h.renderUserForm(w, r, user, false, "")
}

// HandleUserUpdate overwrites a user's editable fields. A non-blank
// password field resets the credential through the hashing path.
// POST /admin/users/{id}/edit
func (h *AdminHandler) HandleUserUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := h.userFromPath(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	user.Username = r.PostFormValue("username")
	user.DisplayName = r.PostFormValue("display_name")
	user.Email = r.PostFormValue("email")
	user.Bio = r.PostFormValue("bio")
	user.IsActive = r.PostFormValue("is_active") == "on"
	user.IsAdmin = r.PostFormValue("is_admin") == "on"

	if err := h.users.Update(r.Context(), user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			h.renderUserForm(w, r, user, false, err.Error())
			return
		}
		h.fail(w, "update user", err)
		return
	}

	if password := r.PostFormValue("password"); password != "" {
		if err := h.auth.SetPassword(r.Context(), user, password); err != nil {
			h.fail(w, "reset password", err)
			return
		}
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

func (h *AdminHandler) renderUserForm(w http.ResponseWriter, r *http.Request, user *domain.User, isNew bool, errorMsg string) {
	title := "Edit user"
	action := fmt.Sprintf("/admin/users/%d/edit", user.ID)
	if isNew {
		title = "New user"
		action = "/admin/users/new"
	}

	passwordLabel := "Password (blank to keep)"
	if isNew {
		passwordLabel = "Password"
	}
	fields := []view.AdminField{
		{Name: "username", Label: "Username", Type: "text", Value: user.Username},
		{Name: "password", Label: passwordLabel, Type: "password"},
		{Name: "display_name", Label: "Display name", Type: "text", Value: user.DisplayName},
		{Name: "email", Label: "Email", Type: "text", Value: user.Email},
		{Name: "bio", Label: "Bio", Type: "textarea", Value: user.Bio},
		{Name: "is_active", Label: "Active", Type: "checkbox", Checked: user.IsActive},
		{Name: "is_admin", Label: "Admin", Type: "checkbox", Checked: user.IsAdmin},
	}
	view.AdminFormPage(title, action, fields, errorMsg, navFor(r.Context())).Render(r.Context(), w)
}

func (h *AdminHandler) userFromPath(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return nil, false
		}
		h.fail(w, "get user", err)
		return nil, false
	}
	return user, true
}

// --- groups ---

// HandleGroups lists all groups.
// GET /admin/groups
func (h *AdminHandler) HandleGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.List(r.Context())
	if err != nil {
		h.fail(w, "list groups", err)
		return
	}

	rows := make([]view.AdminRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, view.AdminRow{
			Cells:     []string{strconv.FormatInt(g.ID, 10), g.Name},
			EditURL:   fmt.Sprintf("/admin/groups/%d/edit", g.ID),
			DeleteURL: fmt.Sprintf("/admin/groups/%d/delete", g.ID),
		})
	}
	view.AdminListPage("Groups", adminTables, []string{"ID", "Name"},
		rows, "/admin/groups/new", navFor(r.Context())).Render(r.Context(), w)
}

// HandleGroupNewForm renders the group creation form.
// GET /admin/groups/new
func (h *AdminHandler) HandleGroupNewForm(w http.ResponseWriter, r *http.Request) {
	h.renderGroupForm(w, r, &domain.Group{}, true)
}

// HandleGroupCreate creates a group.
// POST /admin/groups/new
func (h *AdminHandler) HandleGroupCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := h.groups.Create(r.Context(), &domain.Group{Name: r.PostFormValue("name")}); err != nil {
		h.fail(w, "create group", err)
		return
	}
	http.Redirect(w, r, "/admin/groups", http.StatusSeeOther)
}

// HandleGroupEditForm renders the group edit form.
// GET /admin/groups/{id}/edit
func (h *AdminHandler) HandleGroupEditForm(w http.ResponseWriter, r *http.Request) {
	group, ok := h.groupFromPath(w, r)
	if !ok {
		return
	}
	h.renderGroupForm(w, r, group, false)
}

// HandleGroupUpdate renames a group.
// POST /admin/groups/{id}/edit
func (h *AdminHandler) HandleGroupUpdate(w http.ResponseWriter, r *http.Request) {
	group, ok := h.groupFromPath(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	group.Name = r.PostFormValue("name")
	if err := h.groups.Update(r.Context(), group); err != nil {
		h.fail(w, "update group", err)
		return
	}
	http.Redirect(w, r, "/admin/groups", http.StatusSeeOther)
}

// HandleGroupDelete removes a group.
// POST /admin/groups/{id}/delete
func (h *AdminHandler) HandleGroupDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.groups.Delete(r.Context(), id); err != nil {
		h.fail(w, "delete group", err)
		return
	}
	http.Redirect(w, r, "/admin/groups", http.StatusSeeOther)
}

func (h *AdminHandler) renderGroupForm(w http.ResponseWriter, r *http.Request, group *domain.Group, isNew bool) {
	title := "Edit group"
	action := fmt.Sprintf("/admin/groups/%d/edit", group.ID)
	if isNew {
		title = "New group"
		action = "/admin/groups/new"
	}
	fields := []view.AdminField{
		{Name: "name", Label: "Name", Type: "text", Value: group.Name},
	}
	view.AdminFormPage(title, action, fields, "", navFor(r.Context())).Render(r.Context(), w)
}

func (h *AdminHandler) groupFromPath(w http.ResponseWriter, r *http.Request) (*domain.Group, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	group, err := h.groups.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return nil, false
		}
		h.fail(w, "get group", err)
		return nil, false
	}
	return group, true
}

// --- memberships ---

// HandleMemberships lists user/group joins.
// GET /admin/memberships
func (h *AdminHandler) HandleMemberships(w http.ResponseWriter, r *http.Request) {
	memberships, err := h.memberships.List(r.Context())
	if err != nil {
		h.fail(w, "list memberships", err)
		return
	}

	rows := make([]view.AdminRow, 0, len(memberships))
	for _, m := range memberships {
		rows = append(rows, view.AdminRow{
			Cells: []string{
				strconv.FormatInt(m.ID, 10),
				strconv.FormatInt(m.UserID, 10),
				strconv.FormatInt(m.GroupID, 10),
			},
			DeleteURL: fmt.Sprintf("/admin/memberships/%d/delete", m.ID),
		})
	}
	view.AdminListPage("Memberships", adminTables, []string{"ID", "User", "Group"},
		rows, "/admin/memberships/new", navFor(r.Context())).Render(r.Context(), w)
}

// HandleMembershipNewForm renders the membership creation form.
// GET /admin/memberships/new
func (h *AdminHandler) HandleMembershipNewForm(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.fail(w, "list users", err)
		return
	}
	groups, err := h.groups.List(r.Context())
	if err != nil {
		h.fail(w, "list groups", err)
		return
	}

	userOpts := make([]view.AdminOption, 0, len(users))
	for _, u := range users {
		userOpts = append(userOpts, view.AdminOption{Value: strconv.FormatInt(u.ID, 10), Label: u.Username})
	}
	groupOpts := make([]view.AdminOption, 0, len(groups))
	for _, g := range groups {
		groupOpts = append(groupOpts, view.AdminOption{Value: strconv.FormatInt(g.ID, 10), Label: g.Name})
	}

	fields := []view.AdminField{
		{Name: "user", Label: "User", Type: "select", Options: userOpts},
		{Name: "group", Label: "Group", Type: "select", Options: groupOpts},
	}
	view.AdminFormPage("New membership", "/admin/memberships/new", fields, "", navFor(r.Context())).Render(r.Context(), w)
}

// HandleMembershipCreate joins a user to a group.
// POST /admin/memberships/new
func (h *AdminHandler) HandleMembershipCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	userID, err1 := strconv.ParseInt(r.PostFormValue("user"), 10, 64)
	groupID, err2 := strconv.ParseInt(r.PostFormValue("group"), 10, 64)
	if err1 != nil || err2 != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := h.memberships.Create(r.Context(), &domain.UserMembership{UserID: userID, GroupID: groupID}); err != nil {
		h.fail(w, "create membership", err)
		return
	}
	http.Redirect(w, r, "/admin/memberships", http.StatusSeeOther)
}

// HandleMembershipDelete removes a membership.
// POST /admin/memberships/{id}/delete
func (h *AdminHandler) HandleMembershipDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.memberships.Delete(r.Context(), id); err != nil {
		h.fail(w, "delete membership", err)
		return
	}
	http.Redirect(w, r, "/admin/memberships", http.StatusSeeOther)
}

// --- templates ---

// HandleTemplates lists style templates.
// GET /admin/templates
func (h *AdminHandler) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List(r.Context())
	if err != nil {
		h.fail(w, "list templates", err)
		return
	}

	rows := make([]view.AdminRow, 0, len(templates))
	for _, t := range templates {
		rows = append(rows, view.AdminRow{
			Cells:     []string{strconv.FormatInt(t.ID, 10), t.Name, t.Folder},
			EditURL:   fmt.Sprintf("/admin/templates/%d/edit", t.ID),
			DeleteURL: fmt.Sprintf("/admin/templates/%d/delete", t.ID),
		})
	}
	view.AdminListPage("Templates", adminTables, []string{"ID", "Name", "Folder"},
		rows, "/admin/templates/new", navFor(r.Context())).Render(r.Context(), w)
}

// HandleTemplateNewForm renders the template creation form.
// GET /admin/templates/new
func (h *AdminHandler) HandleTemplateNewForm(w http.ResponseWriter, r *http.Request) {
	h.renderTemplateForm(w, r, &domain.Template{}, true)
}

// HandleTemplateCreate creates a template reference.
// POST /admin/templates/new
func (h *AdminHandler) HandleTemplateCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	t := &domain.Template{Name: r.PostFormValue("name"), Folder: r.PostFormValue("folder")}
	if err := h.templates.Create(r.Context(), t); err != nil {
		h.fail(w, "create template", err)
		return
	}
	http.Redirect(w, r, "/admin/templates", http.StatusSeeOther)
}

// HandleTemplateEditForm renders the template edit form.
// GET /admin/templates/{id}/edit
func (h *AdminHandler) HandleTemplateEditForm(w http.ResponseWriter, r *http.Request) {
	t, ok := h.templateFromPath(w, r)
	if !ok {
		return
	}
	h.renderTemplateForm(w, r, t, false)
}

// HandleTemplateUpdate edits a template reference.
// POST /admin/templates/{id}/edit
func (h *AdminHandler) HandleTemplateUpdate(w http.ResponseWriter, r *http.Request) {
	t, ok := h.templateFromPath(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	t.Name = r.PostFormValue("name")
	t.Folder = r.PostFormValue("folder")
	if err := h.templates.Update(r.Context(), t); err != nil {
		h.fail(w, "update template", err)
		return
	}
	http.Redirect(w, r, "/admin/templates", http.StatusSeeOther)
}

// HandleTemplateDelete removes a template reference.
// POST /admin/templates/{id}/delete
func (h *AdminHandler) HandleTemplateDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.templates.Delete(r.Context(), id); err != nil {
		h.fail(w, "delete template", err)
		return
	}
	http.Redirect(w, r, "/admin/templates", http.StatusSeeOther)
}

func (h *AdminHandler) renderTemplateForm(w http.ResponseWriter, r *http.Request, t *domain.Template, isNew bool) {
	title := "Edit template"
	action := fmt.Sprintf("/admin/templates/%d/edit", t.ID)
	if isNew {
		title = "New template"
		action = "/admin/templates/new"
	}
	fields := []view.AdminField{
		{Name: "name", Label: "Name", Type: "text", Value: t.Name},
		{Name: "folder", Label: "Folder", Type: "text", Value: t.Folder},
	}
	view.AdminFormPage(title, action, fields, "", navFor(r.Context())).Render(r.Context(), w)
}

func (h *AdminHandler) templateFromPath(w http.ResponseWriter, r *http.Request) (*domain.Template, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	t, err := h.templates.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return nil, false
		}
		h.fail(w, "get template", err)
		return nil, false
	}
	return t, true
}

// --- pages ---

// HandlePages lists all pages with raw columns. Creation goes through
// the regular CMS form; the admin table offers edit and delete.
// GET /admin/pages
func (h *AdminHandler) HandlePages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.pages.ListAll(r.Context())
	if err != nil {
		h.fail(w, "list pages", err)
		return
	}

	rows := make([]view.AdminRow, 0, len(pages))
	for _, p := range pages {
		parent := ""
		if p.ParentID != nil {
			parent = strconv.FormatInt(*p.ParentID, 10)
		}
		rows = append(rows, view.AdminRow{
			Cells: []string{
				strconv.FormatInt(p.ID, 10), p.Title, p.Slug, parent,
				strconv.FormatInt(p.OwnerID, 10), boolCell(p.IsPublished),
			},
			EditURL:   fmt.Sprintf("/cms/page/%d/edit", p.ID),
			DeleteURL: fmt.Sprintf("/admin/pages/%d/delete", p.ID),
		})
	}
	view.AdminListPage("Pages", adminTables,
		[]string{"ID", "Title", "Slug", "Parent", "Owner", "Published"},
		rows, "/cms/page/new", navFor(r.Context())).Render(r.Context(), w)
}

// HandlePageDelete removes a page row.
// POST /admin/pages/{id}/delete
func (h *AdminHandler) HandlePageDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.pages.Delete(r.Context(), id); err != nil {
		h.fail(w, "delete page", err)
		return
	}
	http.Redirect(w, r, "/admin/pages", http.StatusSeeOther)
}

func (h *AdminHandler) fail(w http.ResponseWriter, op string, err error) {
	slog.Error(op, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func boolCell(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
