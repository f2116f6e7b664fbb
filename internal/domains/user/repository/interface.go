package repository

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/user/model"
)

type UserRepository interface {
	// Returns: ErrUserNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, user *model.User) error

	// DeleteAccount xoá account; users, memberships, comments cascade,
	// blogposts.user_id → NULL (author_name giữ lại)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}
