package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/infrastructure/metrics"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.CORS(c.Config.App.AllowedOrigins),
		middleware.ClientIP(),
	)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "route not found")
	})

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		// Authorization được quyết định trong services (authz.Policy),
		// ở đây chỉ gắn principal (guest nếu không có token)
		v1.Use(c.Auth.OptionalAuth())

		setupAuthRoutes(v1, c)
		setupAdminRoutes(v1, c)
		setupCategoryRoutes(v1, c)
		setupPostRoutes(v1, c)
		setupCommentRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupMediaRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES (/login, /signup screens)
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		limited := auth.Group("", c.AuthRateLimiter.Middleware())
		limited.POST("/signup", c.IdentityHandler.SignUp)
		limited.POST("/confirm", c.IdentityHandler.ConfirmSignUp)
		limited.POST("/resend-code", c.IdentityHandler.ResendCode)
		limited.POST("/signin", c.IdentityHandler.SignIn)
		limited.POST("/refresh", c.IdentityHandler.Refresh)

		auth.POST("/signout", c.Auth.RequireAuth(), c.IdentityHandler.SignOut)
		auth.GET("/session", c.IdentityHandler.Session)
		auth.GET("/me", c.Auth.RequireAuth(), c.IdentityHandler.Me)
	}
}

// ========================================
// ADMIN ROUTES (group membership)
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(c.Auth.RequireAuth(), middleware.RequireGroup(c.Config.Identity.AuthorGroup))
	{
		admin.POST("/groups/members", c.IdentityHandler.AddUserToGroup)
		admin.DELETE("/groups/members", c.IdentityHandler.RemoveUserFromGroup)
		admin.GET("/users/:username/groups", c.IdentityHandler.ListUserGroups)
	}
}

// ========================================
// CATEGORY ROUTES (/categories screen)
// ========================================
func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	categories := v1.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.ListCategories)
		categories.POST("", c.CategoryHandler.CreateCategory)
	}
}

// ========================================
// POST ROUTES (/, /post/:id, /create-post screens)
// ========================================
func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container) {
	posts := v1.Group("/posts")
	{
		posts.GET("", c.BlogpostHandler.ListPosts)
		posts.GET("/compose", c.BlogpostHandler.Compose)
		posts.GET("/:id", c.BlogpostHandler.GetPost)
		posts.GET("/:id/author", c.BlogpostHandler.GetAuthor)

		posts.POST("", c.BlogpostHandler.CreatePost)
		posts.PUT("/:id", c.BlogpostHandler.UpdatePost)
		posts.DELETE("/:id", c.BlogpostHandler.DeletePost)

		posts.GET("/:id/comments", c.CommentHandler.ListPostComments)
		posts.POST("/:id/comments", c.CommentHandler.CreateComment)
	}
}

func setupCommentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	comments := v1.Group("/comments")
	{
		comments.GET("/:id", c.CommentHandler.GetComment)
		comments.GET("/:id/post", c.CommentHandler.GetCommentPost)
	}
}

// ========================================
// USER ROUTES (profile)
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	{
		me := users.Group("/me", c.Auth.RequireAuth())
		me.GET("", c.UserHandler.GetMe)
		me.PUT("", c.UserHandler.UpdateMe)
		me.DELETE("", c.UserHandler.DeleteMe)

		users.GET("/:id/posts", c.UserHandler.ListUserPosts)
		users.GET("/:id/comments", c.UserHandler.ListUserComments)
	}
}

// ========================================
// MEDIA ROUTES (object storage)
// ========================================
func setupMediaRoutes(v1 *gin.RouterGroup, c *container.Container) {
	media := v1.Group("/media", c.Auth.RequireAuth())
	{
		media.GET("", c.MediaHandler.List)
		media.POST("", c.MediaHandler.Upload)
		media.DELETE("", c.MediaHandler.Remove)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Database là critical, redis + storage chỉ làm degraded
		dbStatus := statusOf(appCtx.DB.Ping(ctx))
		redisStatus := statusOf(appCtx.Cache.Ping(ctx))
		storageStatus := statusOf(appCtx.Storage.Ping(ctx))

		if dbStatus != "ok" || redisStatus != "ok" || storageStatus != "ok" {
			health["status"] = "degraded"
		}
		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"storage":  storageStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}

func statusOf(err error) string {
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return "ok"
}
