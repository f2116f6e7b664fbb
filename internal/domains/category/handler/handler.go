package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/category/model"
	"blog-backend/internal/domains/category/service"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
)

type CategoryHandler struct {
	categoryService service.ServiceInterface
}

func NewCategoryHandler(categoryService service.ServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

var errorMappings = []response.Mapping{
	{Err: model.ErrDuplicateCategory, Status: http.StatusConflict, Code: "DUPLICATE_CATEGORY"},
	{Err: model.ErrInvalidSlug, Status: http.StatusBadRequest, Code: "INVALID_CATEGORY_NAME"},
	{Err: model.ErrCategoryNotFound, Status: http.StatusNotFound, Code: "CATEGORY_NOT_FOUND"},
}

// ListCategories
// GET /api/v1/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, categories, &response.Meta{Total: len(categories)})
}

// CreateCategory
// POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}

	c.Header("Location", "/api/v1/categories/"+category.ID.String())
	response.Success(c, http.StatusCreated, category)
}
