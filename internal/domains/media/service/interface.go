package service

import (
	"context"

	"blog-backend/internal/domains/media/model"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/internal/shared/authz"
)

// ObjectStore là phần của *storage.MinIOStorage mà media dùng
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	List(ctx context.Context, prefix string) ([]storage.Object, error)
	RemoveObjects(ctx context.Context, keys []string) error
	RemoveFolder(ctx context.Context, prefix string) error
	PublicURL(key string) string
}

type ServiceInterface interface {
	Upload(ctx context.Context, principal authz.Principal, filename string, data []byte) (*model.Item, error)
	List(ctx context.Context, principal authz.Principal, opts model.ListOptions) (*model.ListResult, error)
	Remove(ctx context.Context, principal authz.Principal, paths []string) error
	PublicURL(key string) string

	// RemoveAllForUser: dọn media khi account bị xoá (worker)
	RemoveAllForUser(ctx context.Context, userID string) error
}
