package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blog-backend/internal/domains/blogpost/model"
	"blog-backend/internal/domains/blogpost/repository"
	catservice "blog-backend/internal/domains/category/service"
	"blog-backend/internal/shared/authz"
	"blog-backend/internal/shared/utils"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/logger"
)

const (
	feedCacheTTL     = 2 * time.Minute
	feedCachePattern = "posts:feed:*"
)

func feedCacheKey(f model.ListFilter) string {
	return fmt.Sprintf("posts:feed:%s:%d:%d", f.Category, f.Page, f.Limit)
}

type blogpostService struct {
	repo       repository.BlogpostRepository
	categories catservice.ServiceInterface
	policy     *authz.Policy
	cache      cache.Cache
	now        func() time.Time
}

func NewBlogpostService(
	repo repository.BlogpostRepository,
	categories catservice.ServiceInterface,
	policy *authz.Policy,
	c cache.Cache,
) ServiceInterface {
	return &blogpostService{
		repo:       repo,
		categories: categories,
		policy:     policy,
		cache:      c,
		now:        time.Now,
	}
}

// =====================================================
// READ
// =====================================================

func (s *blogpostService) List(ctx context.Context, principal authz.Principal, filter model.ListFilter) (*model.PostPage, error) {
	// Step 1: Authorize
	if err := s.policy.Authorize(authz.EntityBlogpost, authz.OpRead, principal, ""); err != nil {
		return nil, err
	}

	// Step 2: Cache-aside
	filter.UserID = nil
	key := feedCacheKey(filter)
	var cached model.PostPage
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	// Step 3: Query
	page, err := s.listPage(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, page, feedCacheTTL); err != nil {
		logger.Warn("cache feed page failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return page, nil
}

func (s *blogpostService) listPage(ctx context.Context, filter model.ListFilter) (*model.PostPage, error) {
	posts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.PostSummary, 0, len(posts))
	for i := range posts {
		summary := posts[i].ToSummary()
		// Post mới nhất của feed được hiển thị dạng featured với lead dài hơn
		if i == 0 && filter.Page == 1 && filter.UserID == nil {
			summary.Featured = true
			summary.Lead = utils.FeaturedExcerpt(posts[i].Content)
		}
		summaries = append(summaries, summary)
	}

	return &model.PostPage{
		Posts: summaries,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *blogpostService) Get(ctx context.Context, principal authz.Principal, id uuid.UUID) (*model.PostDetail, error) {
	if principal.IsGuest() {
		return nil, authz.ErrUnauthenticated
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(authz.EntityBlogpost, authz.OpRead, principal, post.OwnerID()); err != nil {
		return nil, err
	}

	detail := post.ToDetail()
	return &detail, nil
}

// =====================================================
// WRITE
// =====================================================

func (s *blogpostService) Create(ctx context.Context, principal authz.Principal, req model.PostRequest) (*model.PostDetail, error) {
	// Step 1: Authorize
	if err := s.policy.Authorize(authz.EntityBlogpost, authz.OpCreate, principal, ""); err != nil {
		return nil, err
	}

	// Step 2: Validate trước mọi repository call
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 3: Category phải tồn tại
	if err := s.checkCategory(ctx, req.Category); err != nil {
		return nil, err
	}

	// Step 4: Build entity
	userID, err := uuid.Parse(principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid principal id %q: %w", principal.UserID, authz.ErrForbidden)
	}
	authorName, err := s.authorName(ctx, principal, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	post := &model.Blogpost{
		ID:          uuid.New(),
		Title:       req.Title,
		Content:     req.Content,
		UserID:      &userID,
		AuthorName:  authorName,
		Category:    req.Category,
		HeaderImage: req.HeaderImagePtr(),
		Date:        req.ParsedDate(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Step 5: Persist + invalidate
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	logger.Info("blog post created", map[string]interface{}{
		"post_id":  post.ID.String(),
		"user_id":  principal.UserID,
		"category": post.Category,
	})

	detail := post.ToDetail()
	return &detail, nil
}

func (s *blogpostService) Update(ctx context.Context, principal authz.Principal, id uuid.UUID, req model.PostRequest) (*model.PostDetail, error) {
	if err := s.policy.Authorize(authz.EntityBlogpost, authz.OpUpdate, principal, ""); err != nil {
		return nil, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(authz.EntityBlogpost, authz.OpUpdate, principal, post.OwnerID()); err != nil {
		return nil, err
	}

	if req.Category != post.Category {
		if err := s.checkCategory(ctx, req.Category); err != nil {
			return nil, err
		}
	}

	post.Title = req.Title
	post.Content = req.Content
	post.Category = req.Category
	post.HeaderImage = req.HeaderImagePtr()
	post.Date = req.ParsedDate()
	post.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	detail := post.ToDetail()
	return &detail, nil
}

func (s *blogpostService) Delete(ctx context.Context, principal authz.Principal, id uuid.UUID) error {
	if err := s.policy.Authorize(authz.EntityBlogpost, authz.OpDelete, principal, ""); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)

	logger.Info("blog post deleted", map[string]interface{}{
		"post_id": id.String(),
		"user_id": principal.UserID,
	})
	return nil
}

// =====================================================
// RELATIONSHIPS
// =====================================================

func (s *blogpostService) Author(ctx context.Context, principal authz.Principal, id uuid.UUID) (*model.AuthorRef, error) {
	if err := s.policy.Authorize(authz.EntityBlogpost, authz.OpRead, principal, ""); err != nil {
		return nil, err
	}
	return s.repo.Author(ctx, id)
}

func (s *blogpostService) ListByUser(ctx context.Context, principal authz.Principal, userID uuid.UUID, page, limit int) (*model.PostPage, error) {
	if err := s.policy.Authorize(authz.EntityBlogpost, authz.OpRead, principal, userID.String()); err != nil {
		return nil, err
	}
	return s.listPage(ctx, model.ListFilter{UserID: &userID, Page: page, Limit: limit})
}

func (s *blogpostService) Compose(ctx context.Context, principal authz.Principal) (*model.ComposeView, error) {
	if principal.IsGuest() {
		return nil, authz.ErrUnauthenticated
	}

	categories, err := s.categories.List(ctx, principal)
	if err != nil {
		return nil, err
	}

	view := &model.ComposeView{
		Categories: categories,
		CanPublish: s.policy.Allows(authz.EntityBlogpost, authz.OpCreate, principal, ""),
		AuthorName: principal.Email,
	}
	if userID, err := uuid.Parse(principal.UserID); err == nil {
		if name, err := s.authorName(ctx, principal, userID); err == nil {
			view.AuthorName = name
		}
	}
	return view, nil
}

func (s *blogpostService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// =====================================================
// HELPERS
// =====================================================

func (s *blogpostService) checkCategory(ctx context.Context, name string) error {
	exists, err := s.categories.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%q: %w", name, model.ErrCategoryNotFound)
	}
	return nil
}

// authorName: tên từ User record, fallback email
func (s *blogpostService) authorName(ctx context.Context, principal authz.Principal, userID uuid.UUID) (string, error) {
	name, err := s.repo.DisplayName(ctx, userID)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = principal.Email
	}
	return name, nil
}

func (s *blogpostService) invalidate(ctx context.Context) {
	s.InvalidateFeed(ctx)
	s.categories.InvalidateCache(ctx)
}

func (s *blogpostService) InvalidateFeed(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, feedCachePattern); err != nil {
		logger.Warn("invalidate feed cache failed", map[string]interface{}{"error": err.Error()})
	}
}
