package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/config"
	"blog-backend/internal/domains/identity"
	"blog-backend/internal/infrastructure/metrics"
	"blog-backend/internal/infrastructure/queue"
	"blog-backend/internal/shared"
	"blog-backend/internal/shared/authz"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"
)

const defaultBcryptCost = 12

// identityService implement identity.Service
type identityService struct {
	repo    identity.Repository
	admin   identity.GroupAdmin
	trigger identity.PostConfirmationTrigger
	jwt     *jwt.Manager
	cache   cache.Cache
	queue   queue.Enqueuer
	cfg     config.IdentityConfig

	bcryptCost  int
	compareHash func(hash, password []byte) error
	now         func() time.Time

	// dummyHash: unknown email vẫn tốn đúng một lần bcrypt compare
	dummyOnce sync.Once
	dummy     []byte
}

func NewIdentityService(
	repo identity.Repository,
	admin identity.GroupAdmin,
	trigger identity.PostConfirmationTrigger,
	jwtManager *jwt.Manager,
	c cache.Cache,
	q queue.Enqueuer,
	cfg config.IdentityConfig,
) identity.Service {
	return &identityService{
		repo:       repo,
		admin:      admin,
		trigger:    trigger,
		jwt:        jwtManager,
		cache:      c,
		queue:      q,
		cfg:        cfg,
		bcryptCost:  defaultBcryptCost,
		compareHash: bcrypt.CompareHashAndPassword,
		now:         time.Now,
	}
}

func (s *identityService) dummyHash() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.bcryptCost)
		if err != nil {
			logger.Error("generate dummy password hash failed", err)
			return
		}
		s.dummy = hash
	})
	return s.dummy
}

// ========================================
// SIGN-UP
// ========================================

// SignUp tạo account chưa confirm và gửi confirmation code qua email
func (s *identityService) SignUp(ctx context.Context, req identity.SignUpRequest) (*identity.AccountDTO, error) {
	// 1. VALIDATE INPUT
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. HASH PASSWORD
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. GENERATE CONFIRMATION CODE
	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	// 4. PERSIST
	now := s.now()
	expiresAt := now.Add(s.cfg.CodeTTL)
	account := &identity.Account{
		ID:                    uuid.New(),
		Username:              req.Email,
		Email:                 req.Email,
		PasswordHash:          string(hash),
		GivenName:             req.FirstName,
		FamilyName:            req.LastName,
		ConfirmationCode:      &code,
		ConfirmationExpiresAt: &expiresAt,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	// 5. SEND CODE (async). Lỗi enqueue không fail sign-up, user có thể resend
	s.sendCode(ctx, account.Email, code)

	dto := account.ToDTO()
	return &dto, nil
}

// ConfirmSignUp xác nhận code, tạo User record rồi dispatch post-confirmation trigger
func (s *identityService) ConfirmSignUp(ctx context.Context, req identity.ConfirmSignUpRequest) error {
	req.Email = identity.NormalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return err
	}

	account, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	now := s.now()
	if err := account.CheckCode(req.Code, now); err != nil {
		return err
	}

	if err := s.repo.Confirm(ctx, account.ID, account.Profile(), now); err != nil {
		return err
	}

	s.dispatchPostConfirmation(ctx, identity.PostConfirmationEvent{
		Version:       "1",
		TriggerSource: identity.TriggerSourceConfirmSignUp,
		UserPoolID:    s.cfg.UserPoolID,
		UserName:      account.Username,
		Request: map[string]string{
			"email": account.Email,
			"sub":   account.ID.String(),
		},
	})
	return nil
}

// dispatchPostConfirmation: queue trước, lỗi thì chạy trigger inline
func (s *identityService) dispatchPostConfirmation(ctx context.Context, event identity.PostConfirmationEvent) {
	err := s.queue.Enqueue(ctx, shared.TypePostConfirmation, event,
		asynq.Queue(shared.QueueTriggers),
		asynq.MaxRetry(3),
	)
	if err == nil {
		return
	}

	logger.Warn("enqueue post-confirmation trigger failed, running inline", map[string]interface{}{
		"user":  event.UserName,
		"error": err.Error(),
	})
	s.trigger.Handle(ctx, event)
}

func (s *identityService) ResendConfirmationCode(ctx context.Context, req identity.ResendCodeRequest) error {
	req.Email = identity.NormalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return err
	}

	account, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if account.Confirmed {
		return identity.ErrAlreadyConfirmed
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	if err := s.repo.UpdateConfirmationCode(ctx, account.ID, code, s.now().Add(s.cfg.CodeTTL)); err != nil {
		return err
	}

	s.sendCode(ctx, account.Email, code)
	return nil
}

func (s *identityService) sendCode(ctx context.Context, email, code string) {
	payload := shared.ConfirmationCodePayload{
		Email:     email,
		Code:      code,
		ExpiresIn: s.cfg.CodeTTL.String(),
	}
	err := s.queue.Enqueue(ctx, shared.TypeSendConfirmationCode, payload,
		asynq.Queue(shared.QueueEmail),
		asynq.MaxRetry(5),
	)
	if err != nil {
		logger.Error("enqueue confirmation code email failed", err)
	}
}

// ========================================
// SESSION
// ========================================

func signInFailureKey(email string) string {
	return "signin:fail:" + email
}

// SignIn xác thực email/password. 5 lần sai trong 15 phút → khoá 15 phút
func (s *identityService) SignIn(ctx context.Context, req identity.SignInRequest) (*identity.TokenResponse, error) {
	// 1. VALIDATE INPUT
	req.Email = identity.NormalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. CHECK LOCKOUT
	key := signInFailureKey(req.Email)
	var failures int64
	if _, err := s.cache.Get(ctx, key, &failures); err != nil {
		logger.Warn("read sign-in failures failed", map[string]interface{}{"error": err.Error()})
	}
	if failures >= int64(s.cfg.MaxLoginAttempt) {
		metrics.ObserveSignInFailure("locked")
		return nil, identity.ErrTooManyAttempts
	}

	// 3. FIND ACCOUNT
	// Không expose "email not found"
	account, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			_ = s.compareHash(s.dummyHash(), []byte(req.Password))
			s.recordFailure(ctx, key, "unknown_user")
			return nil, identity.ErrInvalidCredentials
		}
		return nil, err
	}

	// 4. VERIFY PASSWORD
	if err := s.compareHash([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailure(ctx, key, "bad_password")
		return nil, identity.ErrInvalidCredentials
	}

	// 5. CHECK CONFIRMED
	if !account.Confirmed {
		metrics.ObserveSignInFailure("unconfirmed")
		return nil, identity.ErrUserNotConfirmed
	}

	_ = s.cache.Delete(ctx, key)
	return s.issueTokens(account)
}

func (s *identityService) recordFailure(ctx context.Context, key, reason string) {
	metrics.ObserveSignInFailure(reason)

	n, err := s.cache.Increment(ctx, key)
	if err != nil {
		logger.Warn("record sign-in failure failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if n == 1 || n >= int64(s.cfg.MaxLoginAttempt) {
		_ = s.cache.Expire(ctx, key, s.cfg.LockoutDuration)
	}
}

func (s *identityService) issueTokens(account *identity.Account) (*identity.TokenResponse, error) {
	access, claims, err := s.jwt.GenerateAccessToken(account.ID.String(), account.Email, account.Groups)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(account.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &identity.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    claims.ExpiresAt.Time,
		Account:      account.ToDTO(),
	}, nil
}

// SignOut revoke jti của access token tới khi token hết hạn
func (s *identityService) SignOut(ctx context.Context, principal authz.Principal) error {
	if principal.IsGuest() {
		return authz.ErrUnauthenticated
	}
	return s.revoke(ctx, principal.TokenID, principal.ExpiresAt)
}

func (s *identityService) revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, jwt.RevocationKey(jti), true, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// RefreshSession đổi refresh token lấy cặp token mới, groups load lại từ DB
func (s *identityService) RefreshSession(ctx context.Context, refreshToken string) (*identity.TokenResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, identity.ErrInvalidToken
	}

	revoked, err := s.cache.Exists(ctx, jwt.RevocationKey(claims.ID))
	if err != nil {
		return nil, fmt.Errorf("check refresh token: %w", err)
	}
	if revoked {
		return nil, identity.ErrInvalidToken
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, identity.ErrInvalidToken
	}
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, identity.ErrInvalidToken
		}
		return nil, err
	}

	tokens, err := s.issueTokens(account)
	if err != nil {
		return nil, err
	}

	// Rotation: refresh token cũ chỉ dùng được 1 lần
	if claims.ExpiresAt != nil {
		if err := s.revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
			return nil, err
		}
	}
	return tokens, nil
}

func (s *identityService) GetCurrentSession(_ context.Context, principal authz.Principal) identity.SessionDTO {
	session := identity.SessionDTO{
		Authenticated: !principal.IsGuest(),
		AuthMode:      principal.Mode(),
		UserID:        principal.UserID,
		Groups:        principal.Groups,
	}
	if session.Groups == nil {
		session.Groups = []string{}
	}
	if !principal.ExpiresAt.IsZero() {
		exp := principal.ExpiresAt
		session.ExpiresAt = &exp
	}
	return session
}

func (s *identityService) GetCurrentUser(ctx context.Context, principal authz.Principal) (*identity.AccountDTO, error) {
	if principal.IsGuest() {
		return nil, authz.ErrUnauthenticated
	}

	id, err := uuid.Parse(principal.UserID)
	if err != nil {
		return nil, identity.ErrUserNotFound
	}
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := account.ToDTO()
	return &dto, nil
}

// ========================================
// ADMIN API
// ========================================

func (s *identityService) AdminAddUserToGroup(ctx context.Context, userPoolID, userName, group string) error {
	return s.admin.AdminAddUserToGroup(ctx, userPoolID, userName, group)
}

func (s *identityService) AdminRemoveUserFromGroup(ctx context.Context, userPoolID, userName, group string) error {
	return s.admin.AdminRemoveUserFromGroup(ctx, userPoolID, userName, group)
}

func (s *identityService) AdminListGroupsForUser(ctx context.Context, userPoolID, userName string) ([]string, error) {
	return s.admin.AdminListGroupsForUser(ctx, userPoolID, userName)
}

// generateCode trả về 6 chữ số, có thể bắt đầu bằng 0
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
