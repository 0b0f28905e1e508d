package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gdugdh24/sparring-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/sparring-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "user_id"

// Authenticator resolves an access token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (string, error)
}

type AuthMiddleware struct {
	auth   Authenticator
	logger *zap.Logger
}

func NewAuthMiddleware(auth Authenticator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, logger: logger}
}

// RequireAuth rejects requests without a valid bearer access token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := handler.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.ErrorResponse{
				Error: "missing authorization token",
			})
			return
		}

		userID, err := m.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidToken) {
				m.logger.Error("authentication failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, handler.ErrorResponse{
					Error: "authentication failed",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.ErrorResponse{
				Error: "invalid or expired token",
			})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}
