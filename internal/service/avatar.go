package service

import (
	"context"
	"fmt"

	"github.com/gopress-cms/gopress/internal/domain"
)

// maxAvatarBytes caps avatar uploads at 1MB.
const maxAvatarBytes = 1 << 20

// AvatarService stores user avatars as blobs and tracks the storage key
// on the user record.
type AvatarService struct {
	files domain.FileStore
	users domain.UserRepository
}

// NewAvatarService creates a new AvatarService.
func NewAvatarService(files domain.FileStore, users domain.UserRepository) *AvatarService {
	return &AvatarService{files: files, users: users}
}

// Save stores the avatar bytes for the user and records the storage key
// on the user row.
func (s *AvatarService) Save(ctx context.Context, user *domain.User, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: avatar is empty", domain.ErrInvalidInput)
	}
	if len(data) > maxAvatarBytes {
		return fmt.Errorf("%w: avatar exceeds 1MB", domain.ErrInvalidInput)
	}

	key := avatarKey(user.ID)
	if err := s.files.Save(ctx, key, data); err != nil {
		return err
	}

	user.Avatar = key
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("record avatar key: %w", err)
	}
	return nil
}

// Get returns the avatar bytes for the user, or domain.ErrNotFound when
// none was uploaded.
func (s *AvatarService) Get(ctx context.Context, userID int64) ([]byte, error) {
	return s.files.Get(ctx, avatarKey(userID))
}

func avatarKey(userID int64) string {
	return fmt.Sprintf("avatar/%d", userID)
}
