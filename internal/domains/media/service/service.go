package service

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"blog-backend/internal/domains/media/model"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/internal/shared/authz"
	"blog-backend/internal/shared/utils"
	"blog-backend/pkg/logger"
)

const thumbnailDir = "thumbnails/"

var allowedContentTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type mediaService struct {
	store  ObjectStore
	images *storage.ImageProcessor
	policy *authz.Policy
}

func NewMediaService(store ObjectStore, images *storage.ImageProcessor, policy *authz.Policy) ServiceInterface {
	return &mediaService{store: store, images: images, policy: policy}
}

// =====================================================
// KEYS
// =====================================================

// UserPrefix: media/<user_id>/
func UserPrefix(userID string) string {
	return "media/" + userID + "/"
}

// SanitizeFilename: "Ảnh Bìa (1).PNG" → "anh-bia-1.png"
func SanitizeFilename(name string) (string, error) {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	ext := path.Ext(base)
	stem := utils.GenerateSlug(strings.TrimSuffix(base, ext))
	ext = utils.GenerateSlug(strings.TrimPrefix(ext, "."))
	if stem == "" {
		return "", model.ErrInvalidFilename
	}
	if ext == "" {
		return stem, nil
	}
	return stem + "." + ext, nil
}

// thumbnailKey giữ nguyên extension gốc: a.png và a.jpg có thumbnail riêng
func thumbnailKey(prefix, filename string) string {
	return prefix + thumbnailDir + filename + ".jpg"
}

// =====================================================
// UPLOAD
// =====================================================

func (s *mediaService) Upload(ctx context.Context, principal authz.Principal, filename string, data []byte) (*model.Item, error) {
	// Step 1: Authorize (owner = chính principal)
	if err := s.policy.Authorize(authz.EntityMedia, authz.OpCreate, principal, principal.UserID); err != nil {
		return nil, err
	}

	// Step 2: Validate file
	if len(data) == 0 {
		return nil, model.ErrEmptyFile
	}
	if len(data) > model.MaxUploadSize {
		return nil, model.ErrFileTooLarge
	}
	name, err := SanitizeFilename(filename)
	if err != nil {
		return nil, err
	}

	contentType := mimetype.Detect(data).String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if !slices.Contains(allowedContentTypes, contentType) {
		return nil, fmt.Errorf("%s: %w", contentType, model.ErrUnsupportedType)
	}

	// Step 3: JPEG/PNG → validate + thumbnail
	var thumb []byte
	if storage.IsImageContentType(contentType) {
		if err := s.images.ValidateImage(data); err != nil {
			return nil, fmt.Errorf("%v: %w", err, model.ErrInvalidImage)
		}
		thumb, err = s.images.Thumbnail(data, storage.ThumbnailSize)
		if err != nil {
			logger.Warn("thumbnail generation failed", map[string]interface{}{"file": name, "error": err.Error()})
		}
	}

	// Step 4: Upload
	prefix := UserPrefix(principal.UserID)
	key := prefix + name
	url, err := s.store.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}

	item := &model.Item{
		Key:         key,
		Name:        name,
		URL:         url,
		Size:        int64(len(data)),
		ContentType: contentType,
	}

	if thumb != nil {
		thumbURL, err := s.store.Upload(ctx, thumbnailKey(prefix, name), thumb, "image/jpeg")
		if err != nil {
			logger.Warn("thumbnail upload failed", map[string]interface{}{"key": key, "error": err.Error()})
		} else {
			item.ThumbnailURL = thumbURL
		}
	}

	logger.Info("media uploaded", map[string]interface{}{
		"key":     key,
		"size":    item.Size,
		"user_id": principal.UserID,
	})
	return item, nil
}

// =====================================================
// LIST
// =====================================================

func (s *mediaService) List(ctx context.Context, principal authz.Principal, opts model.ListOptions) (*model.ListResult, error) {
	if err := s.policy.Authorize(authz.EntityMedia, authz.OpRead, principal, principal.UserID); err != nil {
		return nil, err
	}

	// 1. NORMALIZE OPTIONS
	if opts.Limit <= 0 {
		opts.Limit = model.DefaultListLimit
	}
	if opts.Limit > model.MaxListLimit {
		opts.Limit = model.MaxListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if opts.SortBy == "" {
		opts.SortBy = model.SortByLastModified
	}
	less, ok := sorters[opts.SortBy]
	if !ok {
		return nil, model.ErrInvalidSort
	}

	// 2. LIST + tách thumbnails
	prefix := UserPrefix(principal.UserID)
	objects, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	thumbs := make(map[string]string)
	items := make([]model.Item, 0, len(objects))
	for _, obj := range objects {
		if strings.HasPrefix(obj.Key, prefix+thumbnailDir) {
			thumbs[obj.Key] = s.store.PublicURL(obj.Key)
			continue
		}
		items = append(items, model.Item{
			Key:          obj.Key,
			Name:         strings.TrimPrefix(obj.Key, prefix),
			URL:          s.store.PublicURL(obj.Key),
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			LastModified: obj.LastModified,
		})
	}
	for i := range items {
		items[i].ThumbnailURL = thumbs[thumbnailKey(prefix, items[i].Name)]
	}

	// 3. SORT + PAGINATE
	slices.SortStableFunc(items, func(a, b model.Item) int {
		if opts.Desc {
			return less(b, a)
		}
		return less(a, b)
	})

	total := len(items)
	start := min(opts.Offset, total)
	end := min(start+opts.Limit, total)
	return &model.ListResult{Items: items[start:end], Total: total}, nil
}

var sorters = map[model.SortField]func(a, b model.Item) int{
	model.SortByName: func(a, b model.Item) int {
		return strings.Compare(a.Name, b.Name)
	},
	model.SortByLastModified: func(a, b model.Item) int {
		return a.LastModified.Compare(b.LastModified)
	},
	model.SortBySize: func(a, b model.Item) int {
		switch {
		case a.Size < b.Size:
			return -1
		case a.Size > b.Size:
			return 1
		}
		return 0
	},
}

// =====================================================
// REMOVE
// =====================================================

func (s *mediaService) Remove(ctx context.Context, principal authz.Principal, paths []string) error {
	if err := s.policy.Authorize(authz.EntityMedia, authz.OpDelete, principal, principal.UserID); err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}

	// Mọi path phải nằm trong prefix của principal
	prefix := UserPrefix(principal.UserID)
	keys := make([]string, 0, len(paths)*2)
	for _, p := range paths {
		key := path.Clean(strings.TrimLeft(p, "/"))
		if !strings.HasPrefix(key, prefix) || key == strings.TrimSuffix(prefix, "/") {
			return fmt.Errorf("%q: %w", p, authz.ErrForbidden)
		}
		keys = append(keys, key)
		if !strings.HasPrefix(key, prefix+thumbnailDir) {
			keys = append(keys, thumbnailKey(prefix, strings.TrimPrefix(key, prefix)))
		}
	}

	if err := s.store.RemoveObjects(ctx, keys); err != nil {
		return err
	}

	logger.Info("media removed", map[string]interface{}{"count": len(paths), "user_id": principal.UserID})
	return nil
}

func (s *mediaService) PublicURL(key string) string {
	return s.store.PublicURL(key)
}

func (s *mediaService) RemoveAllForUser(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("empty user id: %w", authz.ErrForbidden)
	}
	return s.store.RemoveFolder(ctx, UserPrefix(userID))
}
