package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenUseAccess  = "access"
	TokenUseRefresh = "refresh"
)

// Claims mirrors the identity token: subject, email and the group claim
// used by the authorization layer.
type Claims struct {
	UserID   string   `json:"sub_id"`
	Email    string   `json:"email"`
	Groups   []string `json:"groups,omitempty"`
	TokenUse string   `json:"token_use"` // "access" or "refresh"
	jwt.RegisteredClaims
}


// Manager handles JWT operations
type Manager struct {
	secret     string
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewManager creates new JWT manager
func NewManager(secret, issuer string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     secret,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateAccessToken ký access token kèm group claim.
// Trả về claims để caller biết jti + expiry (dùng cho sign-out).
func (m *Manager) GenerateAccessToken(userID, email string, groups []string) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Email:    email,
		Groups:   groups,
		TokenUse: TokenUseAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := m.sign(claims)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// GenerateRefreshToken generates a refresh token. Groups are reloaded on refresh.
func (m *Manager) GenerateRefreshToken(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		TokenUse: TokenUseRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return m.sign(claims)
}

func (m *Manager) sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken validates and parses token
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithIssuer(m.issuer))

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// ValidateAccessToken validates access token specifically
func (m *Manager) ValidateAccessToken(tokenString string) (*Claims, error) {
	return m.validateUse(tokenString, TokenUseAccess)
}

// ValidateRefreshToken validates refresh token specifically
func (m *Manager) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return m.validateUse(tokenString, TokenUseRefresh)
}

func (m *Manager) validateUse(tokenString, use string) (*Claims, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.TokenUse != use {
		return nil, fmt.Errorf("invalid token type: expected %s, got %s", use, claims.TokenUse)
	}

	return claims, nil
}

// AccessTTL is the configured lifetime of access tokens.
func (m *Manager) AccessTTL() time.Duration {
	return m.accessTTL
}

// RevocationKey is the cache key marking an access token as signed out.
func RevocationKey(jti string) string {
	return "revoked:" + jti
}
