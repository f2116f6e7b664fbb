package middleware

import (
	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/response"
)

// RequireGroup checks the group claim of the authenticated caller.
// Must run after RequireAuth.
func RequireGroup(group string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal.IsGuest() {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		if !principal.InGroup(group) {
			response.Forbidden(c, "Access denied: "+group+" group required")
			c.Abort()
			return
		}
		c.Next()
	}
}
