package cache

import (
	"context"
	"time"
)

// Cache định nghĩa contract cho cache layer (feed cache, sign-in throttling, token revocation).
// Implementation hiện tại: Redis (internal/infrastructure/cache).
type Cache interface {
	// Get lấy data từ cache và unmarshal vào dest
	// Returns: (found bool, error)
	// - found = true: cache hit, data đã unmarshal vào dest
	// - found = false: cache miss, dest không bị thay đổi
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set lưu data vào cache với TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete xóa các keys khỏi cache
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern xóa tất cả keys match pattern (vd: "posts:feed:*")
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error

	// Counters cho failed sign-in tracking
	Increment(ctx context.Context, key string) (int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}
