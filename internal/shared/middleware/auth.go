package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/authz"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"
)

const principalKey = "principal"

// Auth resolves the caller from the Authorization header.
type Auth struct {
	jwt   *jwt.Manager
	cache cache.Cache
}

func NewAuth(jwtManager *jwt.Manager, c cache.Cache) *Auth {
	return &Auth{jwt: jwtManager, cache: c}
}

// OptionalAuth - không có header → guest (identity pool), token sai → 401
func (a *Auth) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Set(principalKey, authz.Guest())
			c.Next()
			return
		}
		if !a.authenticate(c) {
			return
		}
		c.Next()
	}
}

// RequireAuth rejects guests.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// OptionalAuth đã xác thực ở group cha
		if !GetPrincipal(c).IsGuest() {
			c.Next()
			return
		}
		if c.GetHeader("Authorization") == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		if !a.authenticate(c) {
			return
		}
		c.Next()
	}
}

func (a *Auth) authenticate(c *gin.Context) bool {
	// 1. Extract token từ "Bearer <token>"
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		response.Unauthorized(c, "invalid authorization header format")
		c.Abort()
		return false
	}

	// 2. Verify và parse JWT
	claims, err := a.jwt.ValidateAccessToken(parts[1])
	if err != nil {
		response.Unauthorized(c, "invalid or expired token")
		c.Abort()
		return false
	}

	// 3. Token đã sign-out?
	revoked, err := a.cache.Exists(c.Request.Context(), jwt.RevocationKey(claims.ID))
	if err != nil {
		// Redis down: vẫn cho qua, token còn hạn ngắn
		logger.Warn("token revocation check failed", map[string]interface{}{
			"error": err.Error(),
			"jti":   claims.ID,
		})
	}
	if revoked {
		response.Unauthorized(c, "token has been revoked")
		c.Abort()
		return false
	}

	principal := authz.Principal{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Groups:  claims.Groups,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	} else {
		principal.ExpiresAt = time.Now().Add(a.jwt.AccessTTL())
	}

	c.Set(principalKey, principal)
	c.Set("userID", claims.UserID)
	return true
}

// GetPrincipal returns the caller set by OptionalAuth/RequireAuth, or a guest.
func GetPrincipal(c *gin.Context) authz.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(authz.Principal); ok {
			return p
		}
	}
	return authz.Guest()
}
