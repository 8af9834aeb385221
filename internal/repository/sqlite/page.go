package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gopress-cms/gopress/internal/domain"
)

// pageRepo implements domain.PageRepository using SQLite.
type pageRepo struct {
	db *sql.DB
}

const pageColumns = `id, owner_id, title, show_title, show_nav, parent_id, template_id, slug, is_published, content, created_at`

func (r *pageRepo) Create(ctx context.Context, page *domain.Page) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO pages (owner_id, title, show_title, show_nav, parent_id, template_id, slug, is_published, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		page.OwnerID, page.Title, page.ShowTitle, page.ShowNav,
		nullableID(page.ParentID), nullableID(page.TemplateID),
		page.Slug, page.IsPublished, page.Content, now,
	)
	if err != nil {
		return fmt.Errorf("insert page: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	page.ID = id
	page.CreatedAt = now
	return nil
}

func (r *pageRepo) GetByID(ctx context.Context, id int64) (*domain.Page, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE id = ?`, id)
	page, err := scanPage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query page by id: %w", err)
	}
	return page, nil
}

func (r *pageRepo) Update(ctx context.Context, page *domain.Page) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE pages SET title = ?, show_title = ?, show_nav = ?, parent_id = ?, template_id = ?, slug = ?, is_published = ?, content = ?
		 WHERE id = ?`,
		page.Title, page.ShowTitle, page.ShowNav,
		nullableID(page.ParentID), nullableID(page.TemplateID),
		page.Slug, page.IsPublished, page.Content, page.ID,
	)
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	return nil
}

func (r *pageRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}

func (r *pageRepo) ListAll(ctx context.Context) ([]domain.Page, error) {
	return r.queryPages(ctx, `SELECT `+pageColumns+` FROM pages ORDER BY id`)
}

func (r *pageRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Page, error) {
	return r.queryPages(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE owner_id = ? ORDER BY id`, ownerID)
}

// ListChildren returns pages whose slug and parent match, ordered by id
// so the first row is the oldest match.
func (r *pageRepo) ListChildren(ctx context.Context, parentID *int64, slug string) ([]domain.Page, error) {
	if parentID == nil {
		return r.queryPages(ctx,
			`SELECT `+pageColumns+` FROM pages WHERE slug = ? AND parent_id IS NULL ORDER BY id`, slug)
	}
	return r.queryPages(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE slug = ? AND parent_id = ? ORDER BY id`, slug, *parentID)
}

// SearchByContent matches pages whose content contains the term. SQLite
// LIKE is case-insensitive for ASCII, which fixes the implementation
// choice here. LIKE metacharacters in the term are escaped so they match
// literally.
func (r *pageRepo) SearchByContent(ctx context.Context, term string) ([]domain.Page, error) {
	pattern := "%" + escapeLike(term) + "%"
	return r.queryPages(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE content LIKE ? ESCAPE '\' ORDER BY id`, pattern)
}

func (r *pageRepo) queryPages(ctx context.Context, query string, args ...any) ([]domain.Page, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	defer rows.Close()

	var pages []domain.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, *page)
	}
	return pages, rows.Err()
}

func scanPage(row rowScanner) (*domain.Page, error) {
	page := &domain.Page{}
	var parentID, templateID sql.NullInt64
	err := row.Scan(&page.ID, &page.OwnerID, &page.Title, &page.ShowTitle, &page.ShowNav,
		&parentID, &templateID, &page.Slug, &page.IsPublished, &page.Content, &page.CreatedAt)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		page.ParentID = &parentID.Int64
	}
	if templateID.Valid {
		page.TemplateID = &templateID.Int64
	}
	return page, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
