package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/blogpost/model"
	"blog-backend/internal/domains/blogpost/service"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/internal/shared/utils"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

type BlogpostHandler struct {
	blogpostService service.ServiceInterface
}

func NewBlogpostHandler(blogpostService service.ServiceInterface) *BlogpostHandler {
	return &BlogpostHandler{blogpostService: blogpostService}
}

var errorMappings = []response.Mapping{
	{Err: model.ErrPostNotFound, Status: http.StatusNotFound, Code: "POST_NOT_FOUND"},
	{Err: model.ErrCategoryNotFound, Status: http.StatusBadRequest, Code: "CATEGORY_NOT_FOUND"},
}

func parsePostID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID")
		return uuid.Nil, false
	}
	return id, true
}

// ListPosts - feed
// GET /api/v1/posts?page=1&limit=10&category=Tech
func (h *BlogpostHandler) ListPosts(c *gin.Context) {
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"), defaultPageSize, maxPageSize)
	filter := model.ListFilter{
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	}

	result, err := h.blogpostService.List(c.Request.Context(), middleware.GetPrincipal(c), filter)
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

// Compose - dữ liệu cho màn hình tạo post
// GET /api/v1/posts/compose
func (h *BlogpostHandler) Compose(c *gin.Context) {
	view, err := h.blogpostService.Compose(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// GetPost
// GET /api/v1/posts/:id
func (h *BlogpostHandler) GetPost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := h.blogpostService.Get(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// CreatePost - AUTHORS only
// POST /api/v1/posts
func (h *BlogpostHandler) CreatePost(c *gin.Context) {
	var req model.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	post, err := h.blogpostService.Create(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}

	c.Header("Location", "/api/v1/posts/"+post.ID.String())
	response.Success(c, http.StatusCreated, post)
}

// UpdatePost - AUTHORS only
// PUT /api/v1/posts/:id
func (h *BlogpostHandler) UpdatePost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	var req model.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	post, err := h.blogpostService.Update(c.Request.Context(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// DeletePost - AUTHORS only
// DELETE /api/v1/posts/:id
func (h *BlogpostHandler) DeletePost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	if err := h.blogpostService.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAuthor
// GET /api/v1/posts/:id/author
func (h *BlogpostHandler) GetAuthor(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	author, err := h.blogpostService.Author(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}
	response.Success(c, http.StatusOK, author)
}
