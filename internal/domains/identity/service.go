package identity

import (
	"context"

	"blog-backend/internal/shared/authz"
)

// Service định nghĩa identity/session provider contract
type Service interface {
	// Sign-up flow
	SignUp(ctx context.Context, req SignUpRequest) (*AccountDTO, error)
	ConfirmSignUp(ctx context.Context, req ConfirmSignUpRequest) error
	ResendConfirmationCode(ctx context.Context, req ResendCodeRequest) error

	// Session
	SignIn(ctx context.Context, req SignInRequest) (*TokenResponse, error)
	SignOut(ctx context.Context, principal authz.Principal) error
	RefreshSession(ctx context.Context, refreshToken string) (*TokenResponse, error)
	GetCurrentSession(ctx context.Context, principal authz.Principal) SessionDTO
	GetCurrentUser(ctx context.Context, principal authz.Principal) (*AccountDTO, error)

	GroupAdmin
}
