package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/media/model"
	"blog-backend/internal/domains/media/service"
	"blog-backend/internal/shared/authz"
)

type stubService struct {
	service.ServiceInterface
	uploadErr error
	filename  string
	size      int
	opts      model.ListOptions
	removed   []string
}

func (s *stubService) Upload(_ context.Context, _ authz.Principal, filename string, data []byte) (*model.Item, error) {
	s.filename, s.size = filename, len(data)
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	return &model.Item{Key: "media/u1/" + filename, Name: filename}, nil
}

func (s *stubService) List(_ context.Context, _ authz.Principal, opts model.ListOptions) (*model.ListResult, error) {
	s.opts = opts
	return &model.ListResult{Items: []model.Item{}, Total: 0}, nil
}

func (s *stubService) Remove(_ context.Context, _ authz.Principal, paths []string) error {
	s.removed = paths
	return nil
}

func newRouter(h *MediaHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/media", h.Upload)
	r.GET("/media", h.List)
	r.DELETE("/media", h.Remove)
	return r
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadPassesFileToService(t *testing.T) {
	stub := &stubService{}
	r := newRouter(NewMediaHandler(stub))

	body, ct := multipartBody(t, "file", "cat.png", []byte("pngbytes"))
	req := httptest.NewRequest(http.MethodPost, "/media", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "cat.png", stub.filename)
	assert.Equal(t, len("pngbytes"), stub.size)
}

func TestUploadErrors(t *testing.T) {
	r := newRouter(NewMediaHandler(&stubService{}))
	req := httptest.NewRequest(http.MethodPost, "/media", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	r = newRouter(NewMediaHandler(&stubService{uploadErr: model.ErrUnsupportedType}))
	body, ct := multipartBody(t, "file", "doc.pdf", []byte("%PDF-1.4"))
	req = httptest.NewRequest(http.MethodPost, "/media", body)
	req.Header.Set("Content-Type", ct)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestListParsesQuery(t *testing.T) {
	stub := &stubService{}
	r := newRouter(NewMediaHandler(stub))

	req := httptest.NewRequest(http.MethodGet, "/media?limit=5&offset=10&sort_by=size&order=desc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ListOptions{Limit: 5, Offset: 10, SortBy: model.SortBySize, Desc: true}, stub.opts)
}

func TestRemoveRequiresPaths(t *testing.T) {
	stub := &stubService{}
	r := newRouter(NewMediaHandler(stub))

	req := httptest.NewRequest(http.MethodDelete, "/media", strings.NewReader(`{"paths":[]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/media", strings.NewReader(`{"paths":["media/u1/a.png"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"media/u1/a.png"}, stub.removed)
}
