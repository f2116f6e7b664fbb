package service

import (
	"context"

	"github.com/google/uuid"

	bpmodel "blog-backend/internal/domains/blogpost/model"
	"blog-backend/internal/domains/comment/model"
	"blog-backend/internal/shared/authz"
)

// PostReader là phần của blogpost service mà comment cần
type PostReader interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Get(ctx context.Context, principal authz.Principal, id uuid.UUID) (*bpmodel.PostDetail, error)
}

type ServiceInterface interface {
	// Create: owner create, body trimmed, post phải tồn tại
	Create(ctx context.Context, principal authz.Principal, blogpostID uuid.UUID, req model.CreateCommentRequest) (*model.Comment, error)
	// ListByPost oldest first
	ListByPost(ctx context.Context, principal authz.Principal, blogpostID uuid.UUID) ([]model.Comment, error)
	Get(ctx context.Context, principal authz.Principal, id uuid.UUID) (*model.Comment, error)

	// Lazy relationships
	Post(ctx context.Context, principal authz.Principal, id uuid.UUID) (*bpmodel.PostDetail, error)
	ListByUser(ctx context.Context, principal authz.Principal, userID uuid.UUID, page, limit int) ([]model.Comment, int, error)
}
