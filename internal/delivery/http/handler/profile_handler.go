package handler

import (
	"net/http"

	"github.com/gdugdh24/sparring-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
	logger         *zap.Logger
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

// CreateProfile handles POST /profiles
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req profile.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.profileUseCase.CreateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err, "failed to create profile")
		return
	}

	c.JSON(http.StatusCreated, p)
}

// GetMyProfile handles GET /profiles/me
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	p, err := h.profileUseCase.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to get profile")
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateMyProfile handles PATCH /profiles/me
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.profileUseCase.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, p)
}

// GetProfileByUserID handles GET /profiles/:user_id
func (h *ProfileHandler) GetProfileByUserID(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	p, err := h.profileUseCase.GetProfileByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err, "failed to get profile")
		return
	}

	c.JSON(http.StatusOK, p)
}
