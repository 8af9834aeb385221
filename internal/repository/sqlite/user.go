package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gopress-cms/gopress/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

const userColumns = `id, username, display_name, email, password, bio, avatar, is_active, is_admin, created_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, display_name, email, password, bio, avatar, is_active, is_admin, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.DisplayName, user.Email, user.Password,
		user.Bio, user.Avatar, user.IsActive, user.IsAdmin, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateUsername
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by username: %w", err)
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = ?, display_name = ?, email = ?, bio = ?, avatar = ?, is_active = ?, is_admin = ?
		 WHERE id = ?`,
		user.Username, user.DisplayName, user.Email, user.Bio,
		user.Avatar, user.IsActive, user.IsAdmin, user.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateUsername
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, stored string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password = ? WHERE id = ?`, stored, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(&user.ID, &user.Username, &user.DisplayName, &user.Email,
		&user.Password, &user.Bio, &user.Avatar, &user.IsActive, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}
