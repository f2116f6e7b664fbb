package repository

import (
	"context"

	"blog-backend/internal/domains/category/model"
)

type CategoryRepository interface {
	// List trả về tất cả category kèm post_count, sort theo tên
	List(ctx context.Context) ([]model.Category, error)

	// Create returns ErrDuplicateCategory on name/slug conflict
	Create(ctx context.Context, category *model.Category) error

	ExistsByName(ctx context.Context, name string) (bool, error)
}
