package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gopress-cms/gopress/internal/domain"
)

// groupRepo implements domain.GroupRepository using SQLite.
type groupRepo struct {
	db *sql.DB
}

func (r *groupRepo) Create(ctx context.Context, group *domain.Group) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO groups (name) VALUES (?)`, group.Name)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	group.ID = id
	return nil
}

func (r *groupRepo) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	group := &domain.Group{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM groups WHERE id = ?`, id,
	).Scan(&group.ID, &group.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query group by id: %w", err)
	}
	return group, nil
}

func (r *groupRepo) List(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM groups ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *groupRepo) Update(ctx context.Context, group *domain.Group) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE groups SET name = ? WHERE id = ?`, group.Name, group.ID)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	return nil
}

func (r *groupRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

// membershipRepo implements domain.MembershipRepository using SQLite.
type membershipRepo struct {
	db *sql.DB
}

func (r *membershipRepo) Create(ctx context.Context, m *domain.UserMembership) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO user_memberships (user_id, group_id) VALUES (?, ?)`,
		m.UserID, m.GroupID)
	if err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	m.ID = id
	return nil
}

func (r *membershipRepo) List(ctx context.Context) ([]domain.UserMembership, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, group_id FROM user_memberships ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []domain.UserMembership
	for rows.Next() {
		var m domain.UserMembership
		if err := rows.Scan(&m.ID, &m.UserID, &m.GroupID); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func (r *membershipRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_memberships WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}
