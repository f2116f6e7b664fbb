package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/identity"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
)

const refreshCookie = "refresh_token"

// IdentityHandler xử lý HTTP requests cho sign-up / sign-in / session
type IdentityHandler struct {
	service      identity.Service
	secureCookie bool
}

func NewIdentityHandler(service identity.Service, secureCookie bool) *IdentityHandler {
	return &IdentityHandler{service: service, secureCookie: secureCookie}
}

var errorMappings = []response.Mapping{
	{Err: identity.ErrEmailAlreadyExists, Status: http.StatusConflict, Code: "EMAIL_EXISTS"},
	{Err: identity.ErrAlreadyConfirmed, Status: http.StatusConflict, Code: "ALREADY_CONFIRMED"},
	{Err: identity.ErrInvalidCode, Status: http.StatusBadRequest, Code: "INVALID_CODE"},
	{Err: identity.ErrCodeExpired, Status: http.StatusBadRequest, Code: "CODE_EXPIRED"},
	{Err: identity.ErrInvalidCredentials, Status: http.StatusUnauthorized, Code: "INVALID_CREDENTIALS"},
	{Err: identity.ErrInvalidToken, Status: http.StatusUnauthorized, Code: "INVALID_TOKEN"},
	{Err: identity.ErrUserNotConfirmed, Status: http.StatusForbidden, Code: "USER_NOT_CONFIRMED"},
	{Err: identity.ErrTooManyAttempts, Status: http.StatusTooManyRequests, Code: "TOO_MANY_ATTEMPTS"},
	{Err: identity.ErrUserNotFound, Status: http.StatusNotFound, Code: "USER_NOT_FOUND"},
	{Err: identity.ErrUserPoolNotFound, Status: http.StatusNotFound, Code: "USER_POOL_NOT_FOUND"},
	{Err: identity.ErrGroupNotFound, Status: http.StatusNotFound, Code: "GROUP_NOT_FOUND"},
}

func (h *IdentityHandler) handleError(c *gin.Context, err error) {
	response.HandleError(c, err, errorMappings...)
}

// ========================================
// SIGN-UP ENDPOINTS
// ========================================

// SignUp xử lý POST /auth/signup
func (h *IdentityHandler) SignUp(c *gin.Context) {
	var req identity.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"account":          account,
		"next_step":        "CONFIRM_SIGN_UP",
		"delivery_medium":  "EMAIL",
		"delivery_address": account.Email,
	})
}

// ConfirmSignUp xử lý POST /auth/confirm
func (h *IdentityHandler) ConfirmSignUp(c *gin.Context) {
	var req identity.ConfirmSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.ConfirmSignUp(c.Request.Context(), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"confirmed": true, "next_step": "SIGN_IN"})
}

// ResendCode xử lý POST /auth/resend-code
func (h *IdentityHandler) ResendCode(c *gin.Context) {
	var req identity.ResendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.ResendConfirmationCode(c.Request.Context(), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sent": true})
}

// ========================================
// SESSION ENDPOINTS
// ========================================

// SignIn xử lý POST /auth/signin
func (h *IdentityHandler) SignIn(c *gin.Context) {
	var req identity.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tokens, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setRefreshCookie(c, tokens.RefreshToken)
	response.Success(c, http.StatusOK, tokens)
}

// SignOut xử lý POST /auth/signout
func (h *IdentityHandler) SignOut(c *gin.Context) {
	if err := h.service.SignOut(c.Request.Context(), middleware.GetPrincipal(c)); err != nil {
		h.handleError(c, err)
		return
	}

	c.SetCookie(refreshCookie, "", -1, "/", "", h.secureCookie, true)
	response.Success(c, http.StatusOK, gin.H{"signed_out": true})
}

// Refresh xử lý POST /auth/refresh. Token lấy từ body, fallback cookie
func (h *IdentityHandler) Refresh(c *gin.Context) {
	var req identity.RefreshRequest
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken == "" {
		if cookie, err := c.Cookie(refreshCookie); err == nil {
			req.RefreshToken = cookie
		}
	}
	if err := req.Validate(); err != nil {
		response.Unauthorized(c, "Missing refresh token")
		return
	}

	tokens, err := h.service.RefreshSession(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setRefreshCookie(c, tokens.RefreshToken)
	response.Success(c, http.StatusOK, tokens)
}

// Session xử lý GET /auth/session, guest cũng gọi được
func (h *IdentityHandler) Session(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.GetCurrentSession(c.Request.Context(), middleware.GetPrincipal(c)))
}

// Me xử lý GET /auth/me
func (h *IdentityHandler) Me(c *gin.Context) {
	account, err := h.service.GetCurrentUser(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, account)
}

func (h *IdentityHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, token, 7*24*3600, "/", "", h.secureCookie, true)
}

// ========================================
// ADMIN ENDPOINTS (AUTHORS group)
// ========================================

// AddUserToGroup xử lý POST /admin/groups/members
func (h *IdentityHandler) AddUserToGroup(c *gin.Context) {
	var req identity.GroupMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	if err := h.service.AdminAddUserToGroup(c.Request.Context(), req.UserPoolID, req.UserName, req.Group); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveUserFromGroup xử lý DELETE /admin/groups/members
func (h *IdentityHandler) RemoveUserFromGroup(c *gin.Context) {
	var req identity.GroupMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	if err := h.service.AdminRemoveUserFromGroup(c.Request.Context(), req.UserPoolID, req.UserName, req.Group); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUserGroups xử lý GET /admin/users/:username/groups?user_pool_id=...
func (h *IdentityHandler) ListUserGroups(c *gin.Context) {
	groups, err := h.service.AdminListGroupsForUser(c.Request.Context(), c.Query("user_pool_id"), c.Param("username"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"groups": groups})
}
