package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	bpmodel "blog-backend/internal/domains/blogpost/model"
	cmodel "blog-backend/internal/domains/comment/model"
	"blog-backend/internal/domains/user/model"
	"blog-backend/internal/domains/user/repository"
	"blog-backend/internal/infrastructure/queue"
	"blog-backend/internal/shared"
	"blog-backend/internal/shared/authz"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"
)

type userService struct {
	repo     repository.UserRepository
	posts    PostLister
	comments CommentLister
	policy   *authz.Policy
	cache    cache.Cache
	queue    queue.Enqueuer
	now      func() time.Time
}

func NewUserService(
	repo repository.UserRepository,
	posts PostLister,
	comments CommentLister,
	policy *authz.Policy,
	c cache.Cache,
	q queue.Enqueuer,
) ServiceInterface {
	return &userService{
		repo:     repo,
		posts:    posts,
		comments: comments,
		policy:   policy,
		cache:    c,
		queue:    q,
		now:      time.Now,
	}
}

// self: authorize op trên chính User record của principal
func (s *userService) self(principal authz.Principal, op authz.Operation) (uuid.UUID, error) {
	if err := s.policy.Authorize(authz.EntityUser, op, principal, principal.UserID); err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(principal.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid principal id %q: %w", principal.UserID, authz.ErrForbidden)
	}
	return id, nil
}

func (s *userService) GetMe(ctx context.Context, principal authz.Principal) (*model.User, error) {
	id, err := s.self(principal, authz.OpRead)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *userService) UpdateMe(ctx context.Context, principal authz.Principal, req model.UpdateUserRequest) (*model.User, error) {
	// 1. AUTHORIZE
	id, err := s.self(principal, authz.OpUpdate)
	if err != nil {
		return nil, err
	}

	// 2. VALIDATE
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 3. UPDATE
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Author name trong feed đọc từ users
	s.posts.InvalidateFeed(ctx)
	return user, nil
}

// DeleteMe xoá account + dữ liệu liên quan, media dọn bằng background job
func (s *userService) DeleteMe(ctx context.Context, principal authz.Principal) error {
	// 1. AUTHORIZE
	id, err := s.self(principal, authz.OpDelete)
	if err != nil {
		return err
	}

	// 2. DELETE (cascade)
	if err := s.repo.DeleteAccount(ctx, id); err != nil {
		return err
	}

	// 3. MEDIA CLEANUP (async)
	payload := shared.RemoveUserMediaPayload{UserID: id.String()}
	if err := s.queue.Enqueue(ctx, shared.TypeRemoveUserMedia, payload,
		asynq.Queue(shared.QueueMaintenance), asynq.MaxRetry(5)); err != nil {
		logger.Error("enqueue media cleanup failed", err)
	}

	// 4. REVOKE token hiện tại
	if ttl := principal.ExpiresAt.Sub(s.now()); principal.TokenID != "" && ttl > 0 {
		if err := s.cache.Set(ctx, jwt.RevocationKey(principal.TokenID), true, ttl); err != nil {
			logger.Error("revoke token after account deletion failed", err)
		}
	}

	s.posts.InvalidateFeed(ctx)

	logger.Info("account deleted", map[string]interface{}{"user_id": id.String()})
	return nil
}

func (s *userService) Posts(ctx context.Context, principal authz.Principal, userID uuid.UUID, page, limit int) (*bpmodel.PostPage, error) {
	return s.posts.ListByUser(ctx, principal, userID, page, limit)
}

func (s *userService) Comments(ctx context.Context, principal authz.Principal, userID uuid.UUID, page, limit int) ([]cmodel.Comment, int, error) {
	return s.comments.ListByUser(ctx, principal, userID, page, limit)
}
