package domain

import "context"

// FileStore holds opaque blobs by storage key. Used for user avatars.
type FileStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
