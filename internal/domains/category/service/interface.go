package service

import (
	"context"

	"blog-backend/internal/domains/category/model"
	"blog-backend/internal/shared/authz"
)

type ServiceInterface interface {
	List(ctx context.Context, principal authz.Principal) ([]model.Category, error)
	Create(ctx context.Context, principal authz.Principal, req model.CreateCategoryRequest) (*model.Category, error)

	// Exists không check authz, dùng nội bộ khi tạo post
	Exists(ctx context.Context, name string) (bool, error)

	// InvalidateCache được gọi khi post_count thay đổi
	InvalidateCache(ctx context.Context)
}
