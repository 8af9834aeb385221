package domain

import (
	"context"
	"time"
)

// User represents a registered account. Password holds either a bcrypt
// hash or, for rows imported from older installs, legacy plaintext that
// is upgraded in place on first successful login.
type User struct {
	ID          int64
	Username    string
	DisplayName string
	Email       string
	Password    string
	Bio         string
	Avatar      string
	IsActive    bool
	IsAdmin     bool
	CreatedAt   time.Time
}

// CanonicalName returns the display name if set, otherwise the username.
func (u *User) CanonicalName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	// UpdatePassword persists only the stored credential for the user.
	UpdatePassword(ctx context.Context, id int64, stored string) error
}
