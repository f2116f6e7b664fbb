package service

import (
	"context"

	"github.com/google/uuid"

	bpmodel "blog-backend/internal/domains/blogpost/model"
	cmodel "blog-backend/internal/domains/comment/model"
	"blog-backend/internal/domains/user/model"
	"blog-backend/internal/shared/authz"
)

// PostLister: phần blogpost service mà user domain dùng
type PostLister interface {
	ListByUser(ctx context.Context, principal authz.Principal, userID uuid.UUID, page, limit int) (*bpmodel.PostPage, error)
	InvalidateFeed(ctx context.Context)
}

type CommentLister interface {
	ListByUser(ctx context.Context, principal authz.Principal, userID uuid.UUID, page, limit int) ([]cmodel.Comment, int, error)
}

type ServiceInterface interface {
	// Owner only
	GetMe(ctx context.Context, principal authz.Principal) (*model.User, error)
	UpdateMe(ctx context.Context, principal authz.Principal, req model.UpdateUserRequest) (*model.User, error)
	DeleteMe(ctx context.Context, principal authz.Principal) error

	// Lazy collections
	Posts(ctx context.Context, principal authz.Principal, userID uuid.UUID, page, limit int) (*bpmodel.PostPage, error)
	Comments(ctx context.Context, principal authz.Principal, userID uuid.UUID, page, limit int) ([]cmodel.Comment, int, error)
}
