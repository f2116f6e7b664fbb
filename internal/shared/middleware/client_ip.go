package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/utils"
)

type clientIPKey struct{}

// ClientIP stores the resolved client address on both the gin and request
// contexts. Register before RateLimit.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.ExtractClientIP(c)

		c.Set("client_ip", clientIP)
		ctx := context.WithValue(c.Request.Context(), clientIPKey{}, clientIP)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ClientIPFromContext returns "" when ClientIP did not run.
func ClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}
