package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	bpmodel "blog-backend/internal/domains/blogpost/model"
	"blog-backend/internal/domains/comment/model"
	"blog-backend/internal/domains/comment/repository"
	"blog-backend/internal/shared/authz"
	"blog-backend/pkg/logger"
)

type commentService struct {
	repo   repository.CommentRepository
	posts  PostReader
	policy *authz.Policy
	now    func() time.Time
}

func NewCommentService(repo repository.CommentRepository, posts PostReader, policy *authz.Policy) ServiceInterface {
	return &commentService{repo: repo, posts: posts, policy: policy, now: time.Now}
}

func (s *commentService) Create(ctx context.Context, principal authz.Principal, blogpostID uuid.UUID, req model.CreateCommentRequest) (*model.Comment, error) {
	// 1. AUTHORIZE: comment mới luôn thuộc về người tạo
	if err := s.policy.Authorize(authz.EntityComment, authz.OpCreate, principal, principal.UserID); err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid principal id %q: %w", principal.UserID, authz.ErrForbidden)
	}

	// 2. VALIDATE
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 3. POST PHẢI TỒN TẠI
	exists, err := s.posts.Exists(ctx, blogpostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	// 4. PERSIST
	comment := &model.Comment{
		ID:          uuid.New(),
		Comment:     req.Comment,
		UserID:      userID,
		BlogpostID:  blogpostID,
		AuthorEmail: principal.Email,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	logger.Info("comment created", map[string]interface{}{
		"comment_id":  comment.ID.String(),
		"blogpost_id": blogpostID.String(),
		"user_id":     principal.UserID,
	})
	return comment, nil
}

func (s *commentService) ListByPost(ctx context.Context, principal authz.Principal, blogpostID uuid.UUID) ([]model.Comment, error) {
	if err := s.policy.Authorize(authz.EntityComment, authz.OpRead, principal, ""); err != nil {
		return nil, err
	}

	exists, err := s.posts.Exists(ctx, blogpostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	return s.repo.ListByPost(ctx, blogpostID)
}

func (s *commentService) Get(ctx context.Context, principal authz.Principal, id uuid.UUID) (*model.Comment, error) {
	if principal.IsGuest() {
		return nil, authz.ErrUnauthenticated
	}

	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(authz.EntityComment, authz.OpRead, principal, comment.UserID.String()); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Post(ctx context.Context, principal authz.Principal, id uuid.UUID) (*bpmodel.PostDetail, error) {
	comment, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return s.posts.Get(ctx, principal, comment.BlogpostID)
}

func (s *commentService) ListByUser(ctx context.Context, principal authz.Principal, userID uuid.UUID, page, limit int) ([]model.Comment, int, error) {
	if err := s.policy.Authorize(authz.EntityComment, authz.OpRead, principal, userID.String()); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByUser(ctx, userID, limit, (page-1)*limit)
}
