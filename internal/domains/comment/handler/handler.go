package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bpmodel "blog-backend/internal/domains/blogpost/model"
	"blog-backend/internal/domains/comment/model"
	"blog-backend/internal/domains/comment/service"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
)

type CommentHandler struct {
	commentService service.ServiceInterface
}

func NewCommentHandler(commentService service.ServiceInterface) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

var errorMappings = []response.Mapping{
	{Err: model.ErrCommentNotFound, Status: http.StatusNotFound, Code: "COMMENT_NOT_FOUND"},
	{Err: model.ErrPostNotFound, Status: http.StatusNotFound, Code: "POST_NOT_FOUND"},
	{Err: bpmodel.ErrPostNotFound, Status: http.StatusNotFound, Code: "POST_NOT_FOUND"},
	{Err: model.ErrUserRecordMissing, Status: http.StatusConflict, Code: "USER_RECORD_MISSING"},
}

func parseID(c *gin.Context, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, msg)
		return uuid.Nil, false
	}
	return id, true
}

// ListPostComments
// GET /api/v1/posts/:id/comments
func (h *CommentHandler) ListPostComments(c *gin.Context) {
	postID, ok := parseID(c, "Invalid post ID")
	if !ok {
		return
	}

	comments, err := h.commentService.ListByPost(c.Request.Context(), middleware.GetPrincipal(c), postID)
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, comments, &response.Meta{Total: len(comments)})
}

// CreateComment
// POST /api/v1/posts/:id/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, ok := parseID(c, "Invalid post ID")
	if !ok {
		return
	}

	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), middleware.GetPrincipal(c), postID, req)
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}

	c.Header("Location", "/api/v1/comments/"+comment.ID.String())
	response.Success(c, http.StatusCreated, comment)
}

// GetComment
// GET /api/v1/comments/:id
func (h *CommentHandler) GetComment(c *gin.Context) {
	id, ok := parseID(c, "Invalid comment ID")
	if !ok {
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}
	response.Success(c, http.StatusOK, comment)
}

// GetCommentPost - lazy quan hệ comment → post
// GET /api/v1/comments/:id/post
func (h *CommentHandler) GetCommentPost(c *gin.Context) {
	id, ok := parseID(c, "Invalid comment ID")
	if !ok {
		return
	}

	post, err := h.commentService.Post(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}
	response.Success(c, http.StatusOK, post)
}
