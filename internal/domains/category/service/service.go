package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blog-backend/internal/domains/category/model"
	"blog-backend/internal/domains/category/repository"
	"blog-backend/internal/shared/authz"
	"blog-backend/internal/shared/utils"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/logger"
)

const (
	cacheKeyList = "categories:list"
	cacheTTL     = 5 * time.Minute
)

type categoryService struct {
	repo   repository.CategoryRepository
	policy *authz.Policy
	cache  cache.Cache
	now    func() time.Time
}

func NewCategoryService(repo repository.CategoryRepository, policy *authz.Policy, c cache.Cache) ServiceInterface {
	return &categoryService{repo: repo, policy: policy, cache: c, now: time.Now}
}

// List: guest + authenticated đều đọc được. Cache-aside 5 phút
func (s *categoryService) List(ctx context.Context, principal authz.Principal) ([]model.Category, error) {
	if err := s.policy.Authorize(authz.EntityCategory, authz.OpRead, principal, ""); err != nil {
		return nil, err
	}

	var cached []model.Category
	if found, err := s.cache.Get(ctx, cacheKeyList, &cached); err == nil && found {
		return cached, nil
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []model.Category{}
	}

	if err := s.cache.Set(ctx, cacheKeyList, categories, cacheTTL); err != nil {
		logger.Warn("cache categories failed", map[string]interface{}{"error": err.Error()})
	}
	return categories, nil
}

func (s *categoryService) Create(ctx context.Context, principal authz.Principal, req model.CreateCategoryRequest) (*model.Category, error) {
	// 1. AUTHORIZE (AUTHORS, hoặc guest nếu bật flag)
	if err := s.policy.Authorize(authz.EntityCategory, authz.OpCreate, principal, ""); err != nil {
		return nil, err
	}

	// 2. VALIDATE
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	slug := utils.GenerateSlug(req.CategoryName)
	if slug == "" {
		return nil, model.ErrInvalidSlug
	}

	// 3. PERSIST
	category := &model.Category{
		ID:           uuid.New(),
		CategoryName: req.CategoryName,
		Slug:         slug,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.InvalidateCache(ctx)
	return category, nil
}

func (s *categoryService) Exists(ctx context.Context, name string) (bool, error) {
	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return false, fmt.Errorf("check category %q: %w", name, err)
	}
	return exists, nil
}

func (s *categoryService) InvalidateCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKeyList); err != nil {
		logger.Warn("invalidate category cache failed", map[string]interface{}{"error": err.Error()})
	}
}
