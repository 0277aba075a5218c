package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sumeeth742/university/internal/dto"
	"github.com/sumeeth742/university/internal/service"
	"github.com/sumeeth742/university/pkg/response"
)

// AuthHandler login, logout and account listing endpoints.
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// Login POST /api/auth/login
// Both credential lookup failures and password mismatches map to the
// same client message so the endpoint does not leak which usernames
// exist.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "username and password are required")
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUsername):
			response.BadRequest(c, 11001, "invalid username format")
		case errors.Is(err, service.ErrInvalidCredentials):
			response.BadRequest(c, 11001, service.ErrInvalidCredentials.Error())
		default:
			h.logger.Error("login failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, resp)
}

// Logout POST /api/auth/logout
// Blacklists the presented token until its natural expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := currentTokenID(c)
	expiresAt := currentTokenExpiry(c)

	if err := h.authService.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "logged out", nil)
}

// ListUsers GET /api/auth/users
// Admin only, enforced by route middleware.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	students, err := h.authService.ListStudents(c.Request.Context())
	if err != nil {
		h.logger.Error("list students failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, students)
}
