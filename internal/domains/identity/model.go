package identity

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
)

// Account là identity record - ánh xạ 1:1 với bảng accounts
type Account struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"` // = email
	Email    string    `json:"email"`

	PasswordHash string `json:"-"`

	// Sign-up attributes, copy sang bảng users khi confirm
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`

	// Confirmation
	Confirmed             bool       `json:"confirmed"`
	ConfirmationCode      *string    `json:"-"`
	ConfirmationExpiresAt *time.Time `json:"-"`
	ConfirmedAt           *time.Time `json:"confirmed_at,omitempty"`

	Groups []string `json:"groups"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CheckCode kiểm tra confirmation code tại thời điểm now
func (a *Account) CheckCode(code string, now time.Time) error {
	if a.Confirmed {
		return ErrAlreadyConfirmed
	}
	if a.ConfirmationCode == nil ||
		subtle.ConstantTimeCompare([]byte(*a.ConfirmationCode), []byte(code)) != 1 {
		return ErrInvalidCode
	}
	if a.ConfirmationExpiresAt == nil || !now.Before(*a.ConfirmationExpiresAt) {
		return ErrCodeExpired
	}
	return nil
}

// Profile là dữ liệu để tạo User record khi confirm
type Profile struct {
	FirstName string
	LastName  string
}

func (a *Account) Profile() Profile {
	return Profile{FirstName: a.GivenName, LastName: a.FamilyName}
}

// =====================================================
// POST-CONFIRMATION TRIGGER
// =====================================================

const TriggerSourceConfirmSignUp = "PostConfirmation_ConfirmSignUp"

// PostConfirmationEvent giữ tên field JSON như platform gọi trigger.
type PostConfirmationEvent struct {
	Version       string            `json:"version,omitempty"`
	TriggerSource string            `json:"triggerSource"`
	UserPoolID    string            `json:"userPoolId"`
	UserName      string            `json:"userName"`
	Request       map[string]string `json:"request,omitempty"`
}

// PostConfirmationTrigger chạy trigger trực tiếp (fallback khi enqueue lỗi).
// Luôn trả lại event không đổi.
type PostConfirmationTrigger interface {
	Handle(ctx context.Context, event PostConfirmationEvent) PostConfirmationEvent
}

// GroupAdmin là admin API của user pool
type GroupAdmin interface {
	AdminAddUserToGroup(ctx context.Context, userPoolID, userName, group string) error
	AdminRemoveUserFromGroup(ctx context.Context, userPoolID, userName, group string) error
	AdminListGroupsForUser(ctx context.Context, userPoolID, userName string) ([]string, error)
}
