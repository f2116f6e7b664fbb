package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/identity"
	"blog-backend/internal/shared/authz"
	"blog-backend/internal/shared/response"
)

type stubService struct {
	identity.Service
	signInErr error
	confirmed identity.ConfirmSignUpRequest
}

func (s *stubService) SignIn(context.Context, identity.SignInRequest) (*identity.TokenResponse, error) {
	if s.signInErr != nil {
		return nil, s.signInErr
	}
	return &identity.TokenResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (s *stubService) ConfirmSignUp(_ context.Context, req identity.ConfirmSignUpRequest) error {
	s.confirmed = req
	return identity.ErrCodeExpired
}

func (s *stubService) GetCurrentSession(_ context.Context, p authz.Principal) identity.SessionDTO {
	return identity.SessionDTO{Authenticated: !p.IsGuest(), AuthMode: p.Mode(), Groups: []string{}}
}

func newRouter(h *IdentityHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/signin", h.SignIn)
	r.POST("/confirm", h.ConfirmSignUp)
	r.GET("/session", h.Session)
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSignInSetsRefreshCookie(t *testing.T) {
	r := newRouter(NewIdentityHandler(&stubService{}, false))

	rec := post(r, "/signin", `{"email":"a@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "refresh_token=refresh")
}

func TestSignInErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{identity.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{identity.ErrUserNotConfirmed, http.StatusForbidden, "USER_NOT_CONFIRMED"},
		{identity.ErrTooManyAttempts, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS"},
	}
	for _, tc := range cases {
		r := newRouter(NewIdentityHandler(&stubService{signInErr: tc.err}, false))
		rec := post(r, "/signin", `{"email":"a@example.com","password":"x"}`)

		var body response.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, tc.code, body.Error.Code)
		assert.Equal(t, tc.err.Error(), body.Error.Message)
	}
}

func TestConfirmPassesBody(t *testing.T) {
	stub := &stubService{}
	r := newRouter(NewIdentityHandler(stub, false))

	rec := post(r, "/confirm", `{"email":"a@example.com","code":"123456"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "123456", stub.confirmed.Code)

	rec = post(r, "/confirm", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionForGuest(t *testing.T) {
	r := newRouter(NewIdentityHandler(&stubService{}, false))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/session", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"auth_mode":"identityPool"`)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}
