package service

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/blogpost/model"
	"blog-backend/internal/shared/authz"
)

// =====================================================
// BLOGPOST SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// List là feed (newest first, excerpt, featured lead ở trang 1)
	List(ctx context.Context, principal authz.Principal, filter model.ListFilter) (*model.PostPage, error)
	Get(ctx context.Context, principal authz.Principal, id uuid.UUID) (*model.PostDetail, error)

	// AUTHORS only
	Create(ctx context.Context, principal authz.Principal, req model.PostRequest) (*model.PostDetail, error)
	Update(ctx context.Context, principal authz.Principal, id uuid.UUID, req model.PostRequest) (*model.PostDetail, error)
	Delete(ctx context.Context, principal authz.Principal, id uuid.UUID) error

	// Lazy relationships
	Author(ctx context.Context, principal authz.Principal, id uuid.UUID) (*model.AuthorRef, error)
	ListByUser(ctx context.Context, principal authz.Principal, userID uuid.UUID, page, limit int) (*model.PostPage, error)

	// Compose bootstrap màn hình create-post
	Compose(ctx context.Context, principal authz.Principal) (*model.ComposeView, error)

	// Exists không check authz (comment domain dùng)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// InvalidateFeed xoá toàn bộ feed cache
	InvalidateFeed(ctx context.Context)
}
