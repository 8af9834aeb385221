package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gopress-cms/gopress/internal/domain"
	"github.com/gopress-cms/gopress/internal/service"
	"github.com/gopress-cms/gopress/internal/view"
)

// PageHandler handles the authenticated CMS page routes: listing,
// direct view by id, and the create/edit form.
type PageHandler struct {
	pages *service.PageService
	auth  *service.AuthService
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(pages *service.PageService, auth *service.AuthService) *PageHandler {
	return &PageHandler{pages: pages, auth: auth}
}

// HandleList shows all pages, or the pages of one user.
// GET /cms/pages
// GET /cms/pages/{userID}
func (h *PageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if s := r.URL.Query().Get("s"); s != "" {
		http.Redirect(w, r, "/cms/search?s="+url.QueryEscape(s), http.StatusFound)
		return
	}

	var (
		pages []domain.Page
		title string
		err   error
	)
	if idStr := r.PathValue("userID"); idStr != "" {
		userID, parseErr := strconv.ParseInt(idStr, 10, 64)
		if parseErr != nil {
			http.NotFound(w, r)
			return
		}
		user, userErr := h.auth.GetUserByID(r.Context(), userID)
		if userErr != nil {
			if errors.Is(userErr, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			slog.Error("get user for page list", "error", userErr)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		pages, err = h.pages.ListByOwner(r.Context(), userID)
		title = fmt.Sprintf("Pages by %s", user.CanonicalName())
	} else {
		pages, err = h.pages.ListAll(r.Context())
		title = "Pages by ALL users"
	}
	if err != nil {
		slog.Error("list pages", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.PageListPage(title, pages, navFor(r.Context())).Render(r.Context(), w)
}

// HandleView shows a page by id. Unpublished pages are hidden from
// anonymous sessions.
// GET /cms/page/{id}
func (h *PageHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	page, ok := h.pageFromPath(w, r)
	if !ok {
		return
	}

	if !page.IsPublished && !SessionFromContext(r.Context()).IsAuthenticated {
		http.NotFound(w, r)
		return
	}

	view.PageViewPage(page, navFor(r.Context())).Render(r.Context(), w)
}

// HandleNewForm renders the empty creation form.
// GET /cms/page/new
func (h *PageHandler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, view.PageFormData{
		Page:  domain.Page{ShowTitle: true, ShowNav: true, IsPublished: true},
		IsNew: true,
	})
}

// HandleEditForm renders the edit form for an existing page.
// GET /cms/page/{id}/edit
func (h *PageHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	page, ok := h.pageFromPath(w, r)
	if !ok {
		return
	}
	h.renderForm(w, r, view.PageFormData{Page: *page})
}

// HandleCreate processes the creation form. The owner is always the
// session's user, never a form field.
// POST /cms/page/new
func (h *PageHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, formErrors, ok := parsePageForm(w, r)
	if !ok {
		return
	}
	if len(formErrors) > 0 {
		h.renderFormErrors(w, r, in, formErrors, nil)
		return
	}

	user := UserFromContext(r.Context())
	page, err := h.pages.Create(r.Context(), user.ID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.renderFormErrors(w, r, in, map[string]string{"title": err.Error()}, nil)
			return
		}
		slog.Error("create page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.redirectToPage(w, r, page)
}

// HandleUpdate processes the edit form, overwriting every editable field.
// POST /cms/page/{id}/edit
func (h *PageHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	page, ok := h.pageFromPath(w, r)
	if !ok {
		return
	}

	in, formErrors, ok := parsePageForm(w, r)
	if !ok {
		return
	}
	if len(formErrors) > 0 {
		h.renderFormErrors(w, r, in, formErrors, page)
		return
	}

	if err := h.pages.Update(r.Context(), page, in); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.renderFormErrors(w, r, in, map[string]string{"title": err.Error()}, page)
			return
		}
		slog.Error("update page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.redirectToPage(w, r, page)
}

func (h *PageHandler) pageFromPath(w http.ResponseWriter, r *http.Request) (*domain.Page, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	page, err := h.pages.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return nil, false
		}
		slog.Error("get page", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return page, true
}

// redirectToPage sends the browser to the page's canonical URL.
func (h *PageHandler) redirectToPage(w http.ResponseWriter, r *http.Request, page *domain.Page) {
	pageURL, err := h.pages.URL(r.Context(), page)
	if err != nil {
		slog.Error("compute page url", "id", page.ID, "error", err)
		pageURL = fmt.Sprintf("/cms/page/%d", page.ID)
	}
	http.Redirect(w, r, pageURL, http.StatusSeeOther)
}

func (h *PageHandler) renderForm(w http.ResponseWriter, r *http.Request, data view.PageFormData) {
	parents, err := h.pages.ListAll(r.Context())
	if err != nil {
		slog.Error("list parent choices", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	data.Parents = parents
	if data.Errors == nil {
		data.Errors = map[string]string{}
	}
	view.PageEditPage(data, navFor(r.Context())).Render(r.Context(), w)
}

// renderFormErrors re-renders the form with the submitted values and
// field messages; nothing has been persisted.
func (h *PageHandler) renderFormErrors(w http.ResponseWriter, r *http.Request, in service.PageInput, formErrors map[string]string, existing *domain.Page) {
	data := view.PageFormData{
		Page: domain.Page{
			Title:       in.Title,
			Slug:        in.Slug,
			Content:     in.Content,
			ShowTitle:   in.ShowTitle,
			ShowNav:     in.ShowNav,
			IsPublished: in.IsPublished,
			ParentID:    in.ParentID,
		},
		Errors: formErrors,
		IsNew:  existing == nil,
	}
	if existing != nil {
		data.Page.ID = existing.ID
		data.Page.OwnerID = existing.OwnerID
	}
	w.WriteHeader(http.StatusUnprocessableEntity)
	h.renderForm(w, r, data)
}

// parsePageForm extracts a PageInput from the submitted form along with
// field-level validation messages. An unparseable parent id means "no
// parent".
func parsePageForm(w http.ResponseWriter, r *http.Request) (service.PageInput, map[string]string, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return service.PageInput{}, nil, false
	}

	in := service.PageInput{
		Title:       r.PostFormValue("title"),
		Slug:        r.PostFormValue("slug"),
		Content:     r.PostFormValue("content"),
		ShowTitle:   r.PostFormValue("show_title") == "on",
		ShowNav:     r.PostFormValue("show_nav") == "on",
		IsPublished: r.PostFormValue("is_published") == "on",
	}
	if parentID, err := strconv.ParseInt(r.PostFormValue("parent"), 10, 64); err == nil {
		in.ParentID = &parentID
	}

	formErrors := map[string]string{}
	if in.Title == "" {
		formErrors["title"] = "Title cannot be blank"
	}
	if in.Content == "" {
		formErrors["content"] = "Content cannot be blank"
	}
	return in, formErrors, true
}
