package handler

import (
	"net/http"

	"github.com/gdugdh24/sparring-backend/internal/domain"
	"github.com/gdugdh24/sparring-backend/internal/usecase/match"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
	logger       *zap.Logger
}

func NewMatchHandler(matchUseCase *match.MatchUseCase, logger *zap.Logger) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
		logger:       logger,
	}
}

// RespondRequest carries a participant's answer: "accepted" or "rejected".
type RespondRequest struct {
	Status string `json:"status" binding:"required"`
}

// FindMatches handles POST /match/find
func (h *MatchHandler) FindMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	matches, err := h.matchUseCase.FindMatches(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to find matches")
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetRecommended handles GET /match/recommended
func (h *MatchHandler) GetRecommended(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	matches, err := h.matchUseCase.ListRecommended(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to get recommendations")
		return
	}
	if matches == nil {
		matches = []*domain.Match{}
	}

	c.JSON(http.StatusOK, matches)
}

// RespondToMatch handles PATCH /match/:match_id
func (h *MatchHandler) RespondToMatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	status, err := domain.ParseMatchStatus(req.Status)
	if err != nil {
		respondError(c, h.logger, err, "failed to update match")
		return
	}

	m, err := h.matchUseCase.RespondToMatch(c.Request.Context(), userID, c.Param("match_id"), status)
	if err != nil {
		respondError(c, h.logger, err, "failed to update match")
		return
	}

	c.JSON(http.StatusOK, m)
}
