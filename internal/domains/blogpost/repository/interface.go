package repository

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/blogpost/model"
)

type BlogpostRepository interface {
	// List newest first. Returns (posts, total)
	List(ctx context.Context, filter model.ListFilter) ([]model.Blogpost, int, error)

	// Returns: ErrPostNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*model.Blogpost, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	Create(ctx context.Context, post *model.Blogpost) error
	Update(ctx context.Context, post *model.Blogpost) error
	// Delete xoá post, comments bị xoá theo (ON DELETE CASCADE)
	Delete(ctx context.Context, id uuid.UUID) error

	// Author resolve quan hệ author. User đã xoá → fallback author_name
	Author(ctx context.Context, id uuid.UUID) (*model.AuthorRef, error)

	// DisplayName của user (first + last), "" nếu chưa có User record
	DisplayName(ctx context.Context, userID uuid.UUID) (string, error)
}
