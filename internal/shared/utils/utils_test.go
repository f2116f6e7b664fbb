package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Technology", "technology"},
		{"  Artificial   Intelligence ", "artificial-intelligence"},
		{"Công Nghệ & AI", "cong-nghe-ai"},
		{"Café -- Culture!", "cafe-culture"},
		{"Đà Lạt", "da-lat"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateSlug(tc.in), tc.in)
	}
}

func TestParsePagination(t *testing.T) {
	page, limit := ParsePagination("", "", 20, 100)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = ParsePagination("3", "500", 20, 100)
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, limit)

	page, limit = ParsePagination("-1", "abc", 10, 50)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
}

func TestExtractClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func(remote string, headers map[string]string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		c.Request = req
		return c
	}

	assert.Equal(t, "203.0.113.7", ExtractClientIP(newCtx("10.0.0.1:1234", map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.2",
	})))
	assert.Equal(t, "198.51.100.4", ExtractClientIP(newCtx("10.0.0.1:1234", map[string]string{
		"X-Forwarded-For": "not-an-ip",
		"X-Real-IP":       "198.51.100.4",
	})))
	assert.Equal(t, "192.0.2.10", ExtractClientIP(newCtx("192.0.2.10:5555", nil)))

	assert.True(t, IsPrivateIP("10.1.2.3"))
	assert.True(t, IsPrivateIP("127.0.0.1"))
	assert.False(t, IsPrivateIP("8.8.8.8"))
}
