package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"leaddesk/internal/pkg/response"
	"leaddesk/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthHandler struct {
	service *Service
	log     *zap.Logger
}

func NewAuthHandler(service *Service, log *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, log: log}
}

// Login godoc
// @Summary Admin Login
// @Description Authenticate as admin and get JWT token
// @Tags Admin Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /admin/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	token, expiresAt, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrAdminDisabled):
			response.Error(c, http.StatusServiceUnavailable, "ADMIN_DISABLED", "Admin login is not configured")
		case errors.Is(err, ErrInvalidCredentials):
			h.log.Warn("admin login failed", zap.String("client_ip", c.ClientIP()))
			response.Error(c, http.StatusUnauthorized, "AUTH_FAILED", "Invalid email or password")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   expiresAt,
	})
}

// GetMe godoc
// @Summary Get current admin
// @Tags Admin Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email": email, "role": c.GetString("role")})
}
