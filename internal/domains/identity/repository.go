package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository là data access contract cho accounts + group memberships
type Repository interface {
	// Create tạo account chưa confirm
	// Returns: ErrEmailAlreadyExists nếu email/username đã tồn tại
	Create(ctx context.Context, account *Account) error

	// FindByEmail / FindByID / FindByUsername load account kèm groups
	// Returns: ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)

	UpdateConfirmationCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error

	// Confirm: một transaction - mark confirmed, clear code, tạo User record
	Confirm(ctx context.Context, id uuid.UUID, profile Profile, confirmedAt time.Time) error

	// ClearExpiredCodes xoá code của account chưa confirm đã hết hạn trước cutoff
	ClearExpiredCodes(ctx context.Context, cutoff time.Time) (int, error)

	// ========================================
	// GROUPS
	// ========================================

	// AddToGroup idempotent. Returns: added=false nếu đã là member
	AddToGroup(ctx context.Context, accountID uuid.UUID, group string) (bool, error)
	RemoveFromGroup(ctx context.Context, accountID uuid.UUID, group string) error
	ListGroups(ctx context.Context, accountID uuid.UUID) ([]string, error)
	GroupExists(ctx context.Context, group string) (bool, error)

	// EnsureGroups tạo groups nếu chưa có (startup)
	EnsureGroups(ctx context.Context, groups ...string) error
}
