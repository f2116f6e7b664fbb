package identity

import "errors"

// Repository-level errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("an account with this email already exists")
	ErrGroupNotFound      = errors.New("group not found")
)

// Service-level errors
var (
	// Sign-in
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrUserNotConfirmed   = errors.New("account is not confirmed")
	ErrTooManyAttempts    = errors.New("too many sign-in attempts, please try again later")

	// Confirmation
	ErrInvalidCode      = errors.New("invalid confirmation code")
	ErrCodeExpired      = errors.New("confirmation code has expired")
	ErrAlreadyConfirmed = errors.New("account is already confirmed")

	// Tokens
	ErrInvalidToken = errors.New("invalid or expired token")

	// Admin API
	ErrUserPoolNotFound = errors.New("user pool not found")
)
