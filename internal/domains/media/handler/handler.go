package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/media/model"
	"blog-backend/internal/domains/media/service"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
)

type MediaHandler struct {
	mediaService service.ServiceInterface
}

func NewMediaHandler(mediaService service.ServiceInterface) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

var errorMappings = []response.Mapping{
	{Err: model.ErrEmptyFile, Status: http.StatusBadRequest, Code: "EMPTY_FILE"},
	{Err: model.ErrFileTooLarge, Status: http.StatusRequestEntityTooLarge, Code: "FILE_TOO_LARGE"},
	{Err: model.ErrUnsupportedType, Status: http.StatusUnsupportedMediaType, Code: "UNSUPPORTED_MEDIA_TYPE"},
	{Err: model.ErrInvalidImage, Status: http.StatusBadRequest, Code: "INVALID_IMAGE"},
	{Err: model.ErrInvalidFilename, Status: http.StatusBadRequest, Code: "INVALID_FILENAME"},
	{Err: model.ErrInvalidSort, Status: http.StatusBadRequest, Code: "INVALID_SORT"},
}

// Upload
// POST /api/v1/media (multipart/form-data, field "file")
func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		log.Debug().Err(err).Msg("missing upload file")
		response.BadRequest(c, "file is required (multipart/form-data)")
		return
	}
	if file.Size > model.MaxUploadSize {
		response.HandleError(c, model.ErrFileTooLarge, errorMappings...)
		return
	}

	src, err := file.Open()
	if err != nil {
		response.BadRequest(c, "Cannot read uploaded file")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, model.MaxUploadSize+1))
	if err != nil {
		response.BadRequest(c, "Cannot read uploaded file")
		return
	}

	item, err := h.mediaService.Upload(c.Request.Context(), middleware.GetPrincipal(c), file.Filename, data)
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// List
// GET /api/v1/media?limit=20&offset=0&sort_by=last_modified&order=desc
func (h *MediaHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	opts := model.ListOptions{
		Limit:  limit,
		Offset: offset,
		SortBy: model.SortField(c.Query("sort_by")),
		Desc:   c.Query("order") == "desc",
	}

	result, err := h.mediaService.List(c.Request.Context(), middleware.GetPrincipal(c), opts)
	if err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Items, &response.Meta{Total: result.Total})
}

// Remove
// DELETE /api/v1/media  {"paths": ["media/<user_id>/a.png"]}
func (h *MediaHandler) Remove(c *gin.Context) {
	var req model.RemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Paths) == 0 {
		response.BadRequest(c, "paths is required")
		return
	}

	if err := h.mediaService.Remove(c.Request.Context(), middleware.GetPrincipal(c), req.Paths); err != nil {
		response.HandleError(c, err, errorMappings...)
		return
	}
	c.Status(http.StatusNoContent)
}
