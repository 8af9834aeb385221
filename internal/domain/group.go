package domain

import "context"

// Group is a named collection of users. No business logic consults
// groups yet; they exist as storage plus admin CRUD.
type Group struct {
	ID   int64
	Name string
}

// UserMembership joins a user to a group.
type UserMembership struct {
	ID      int64
	UserID  int64
	GroupID int64
}

type GroupRepository interface {
	Create(ctx context.Context, group *Group) error
	GetByID(ctx context.Context, id int64) (*Group, error)
	List(ctx context.Context) ([]Group, error)
	Update(ctx context.Context, group *Group) error
	Delete(ctx context.Context, id int64) error
}

type MembershipRepository interface {
	Create(ctx context.Context, m *UserMembership) error
	List(ctx context.Context) ([]UserMembership, error)
	Delete(ctx context.Context, id int64) error
}
