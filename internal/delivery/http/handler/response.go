package handler

import (
	"errors"
	"net/http"

	"github.com/gdugdh24/sparring-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// statusFor maps domain errors to HTTP status codes. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrProfileIncomplete),
		errors.Is(err, domain.ErrUserAlreadyExists),
		errors.Is(err, domain.ErrProfileAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrSlotNotFound),
		errors.Is(err, domain.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrMatchAlreadyExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes err as JSON. Internal errors are logged and replaced by
// message so infrastructure details never reach the client.
func respondError(c *gin.Context, log *zap.Logger, err error, message string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(message,
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(status, ErrorResponse{Error: message})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: "invalid request body: " + err.Error(),
	})
}

// currentUserID returns the id RequireAuth stored in the context.
func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return "", false
	}
	return userID, true
}
