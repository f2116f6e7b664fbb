package repository

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/comment/model"
)

type CommentRepository interface {
	// Returns: ErrPostNotFound, ErrUserRecordMissing
	Create(ctx context.Context, comment *model.Comment) error

	// Returns: ErrCommentNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)

	// ListByPost oldest first
	ListByPost(ctx context.Context, blogpostID uuid.UUID) ([]model.Comment, error)

	// ListByUser newest first
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Comment, int, error)
}
