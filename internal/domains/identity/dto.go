package identity

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"blog-backend/internal/shared/authz"
)

var codePattern = regexp.MustCompile(`^[0-9]{6}$`)

// ========================================
// SIGN-UP DTOs
// ========================================

type SignUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
			validation.Length(3, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.RuneLength(6, 128).Error("password must be 6-128 characters"),
		),
		validation.Field(&r.ConfirmPassword,
			validation.Required.Error("please confirm your password"),
			validation.In(r.Password).Error("passwords do not match"),
		),
		validation.Field(&r.FirstName, validation.RuneLength(0, 100)),
		validation.Field(&r.LastName, validation.RuneLength(0, 100)),
	)
}

// Normalize: email lowercase + trim
func (r *SignUpRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type ConfirmSignUpRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (r ConfirmSignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Code,
			validation.Required.Error("confirmation code is required"),
			validation.Match(codePattern).Error("confirmation code must be 6 digits"),
		),
	)
}

type ResendCodeRequest struct {
	Email string `json:"email"`
}

func (r ResendCodeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
	)
}

// ========================================
// SIGN-IN DTOs
// ========================================

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

type TokenResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresAt    time.Time  `json:"expires_at"`
	Account      AccountDTO `json:"account"`
}

// ========================================
// SESSION DTOs
// ========================================

type AccountDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Confirmed bool      `json:"confirmed"`
	Groups    []string  `json:"groups"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Account) ToDTO() AccountDTO {
	groups := a.Groups
	if groups == nil {
		groups = []string{}
	}
	return AccountDTO{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Confirmed: a.Confirmed,
		Groups:    groups,
		CreatedAt: a.CreatedAt,
	}
}

type SessionDTO struct {
	Authenticated bool           `json:"authenticated"`
	AuthMode      authz.AuthMode `json:"auth_mode"`
	UserID        string         `json:"user_id,omitempty"`
	Groups        []string       `json:"groups"`
	ExpiresAt     *time.Time     `json:"expires_at,omitempty"`
}

type GroupMembershipRequest struct {
	UserPoolID string `json:"user_pool_id"`
	UserName   string `json:"username"`
	Group      string `json:"group"`
}

func (r GroupMembershipRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserPoolID, validation.Required),
		validation.Field(&r.UserName, validation.Required),
		validation.Field(&r.Group, validation.Required),
	)
}
