package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/shared/authz"
)

var errPostNotFound = errors.New("blog post not found")

func run(t *testing.T, err error) (int, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(c, err, Mapping{Err: errPostNotFound, Status: http.StatusNotFound, Code: "POST_NOT_FOUND"})

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandleErrorMapsDomainErrors(t *testing.T) {
	status, body := run(t, fmt.Errorf("get post: %w", errPostNotFound))

	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, body.Success)
	assert.Nil(t, body.Data)
	assert.Equal(t, "POST_NOT_FOUND", body.Error.Code)
}

func TestHandleErrorValidation(t *testing.T) {
	status, body := run(t, validation.Errors{"title": errors.New("title is required")})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.NotNil(t, body.Error.Details)
}

func TestHandleErrorAuthz(t *testing.T) {
	status, _ := run(t, fmt.Errorf("create Blogpost: %w", authz.ErrForbidden))
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = run(t, fmt.Errorf("read Blogpost: %w", authz.ErrUnauthenticated))
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHandleErrorHidesBackendFailures(t *testing.T) {
	status, body := run(t, errors.New("pq: connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body.Error.Message)
}
