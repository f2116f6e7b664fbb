package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/user/model"
	"blog-backend/internal/domains/user/service"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/internal/shared/utils"
)

type UserHandler struct {
	userService service.ServiceInterface
}

func NewUserHandler(userService service.ServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

var errorMappings = []response.Mapping{
	{Err: model.ErrUserNotFound, Status: http.StatusNotFound, Code: "USER_NOT_FOUND"},
}

// GetMe
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.GetMe(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// UpdateMe
// PUT /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateMe(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// DeleteMe
// DELETE /api/v1/users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.userService.DeleteMe(c.Request.Context(), middleware.GetPrincipal(c)); err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUserPosts
// GET /api/v1/users/:id/posts
func (h *UserHandler) ListUserPosts(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"), 10, 50)

	result, err := h.userService.Posts(c.Request.Context(), middleware.GetPrincipal(c), userID, page, limit)
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Posts, &response.Meta{
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.Total,
	})
}

// ListUserComments
// GET /api/v1/users/:id/comments
func (h *UserHandler) ListUserComments(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"), 20, 100)

	comments, total, err := h.userService.Comments(c.Request.Context(), middleware.GetPrincipal(c), userID, page, limit)
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, comments, &response.Meta{Page: page, Limit: limit, Total: total})
}
