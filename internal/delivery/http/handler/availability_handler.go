package handler

import (
	"net/http"

	"github.com/gdugdh24/sparring-backend/internal/usecase/availability"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	availabilityUseCase *availability.AvailabilityUseCase
	logger              *zap.Logger
}

func NewAvailabilityHandler(availabilityUseCase *availability.AvailabilityUseCase, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUseCase: availabilityUseCase,
		logger:              logger,
	}
}

// ListSlots handles GET /availability
func (h *AvailabilityHandler) ListSlots(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	slots, err := h.availabilityUseCase.ListSlots(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to list availability")
		return
	}

	c.JSON(http.StatusOK, slots)
}

// AddSlot handles POST /availability
func (h *AvailabilityHandler) AddSlot(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req availability.AddSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	slot, err := h.availabilityUseCase.AddSlot(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err, "failed to add slot")
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// DeleteSlot handles DELETE /availability/:slot_id
func (h *AvailabilityHandler) DeleteSlot(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.availabilityUseCase.DeleteSlot(c.Request.Context(), userID, c.Param("slot_id")); err != nil {
		respondError(c, h.logger, err, "failed to delete slot")
		return
	}

	c.Status(http.StatusNoContent)
}
