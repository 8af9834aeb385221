package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gopress-cms/gopress/internal/domain"
)

// templateRepo implements domain.TemplateRepository using SQLite.
type templateRepo struct {
	db *sql.DB
}

func (r *templateRepo) Create(ctx context.Context, t *domain.Template) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO templates (name, folder) VALUES (?, ?)`, t.Name, t.Folder)
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	t.ID = id
	return nil
}

func (r *templateRepo) GetByID(ctx context.Context, id int64) (*domain.Template, error) {
	t := &domain.Template{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, folder FROM templates WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Folder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query template by id: %w", err)
	}
	return t, nil
}

func (r *templateRepo) List(ctx context.Context) ([]domain.Template, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, folder FROM templates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.Template
	for rows.Next() {
		var t domain.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Folder); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *templateRepo) Update(ctx context.Context, t *domain.Template) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE templates SET name = ?, folder = ? WHERE id = ?`, t.Name, t.Folder, t.ID)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

func (r *templateRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
