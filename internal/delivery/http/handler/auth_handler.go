package handler

import (
	"net/http"
	"strings"

	"github.com/gdugdh24/sparring-backend/internal/usecase/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authUseCase *auth.AuthUseCase
	logger      *zap.Logger
}

func NewAuthHandler(authUseCase *auth.AuthUseCase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.authUseCase.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "registration failed")
		return
	}

	c.JSON(http.StatusCreated, UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		IsActive: user.IsActive,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	pair, err := h.authUseCase.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "login failed")
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	pair, err := h.authUseCase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, h.logger, err, "token refresh failed")
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := BearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "missing authorization token",
		})
		return
	}

	if err := h.authUseCase.Logout(c.Request.Context(), token); err != nil {
		respondError(c, h.logger, err, "logout failed")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "logged out successfully",
	})
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
