package http

import (
	"net/http"

	"github.com/gdugdh24/sparring-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/sparring-backend/internal/delivery/http/middleware"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	authHandler         *handler.AuthHandler
	profileHandler      *handler.ProfileHandler
	availabilityHandler *handler.AvailabilityHandler
	matchHandler        *handler.MatchHandler
	authMiddleware      *middleware.AuthMiddleware
	logger              *zap.Logger
	debug               bool
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	availabilityHandler *handler.AvailabilityHandler,
	matchHandler *handler.MatchHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *zap.Logger,
	debug bool,
) *Router {
	return &Router{
		authHandler:         authHandler,
		profileHandler:      profileHandler,
		availabilityHandler: availabilityHandler,
		matchHandler:        matchHandler,
		authMiddleware:      authMiddleware,
		logger:              logger,
		debug:               debug,
	}
}

func (r *Router) Setup() *gin.Engine {
	if !r.debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(r.logger))

	if r.debug {
		pprof.Register(router)
	}

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/refresh", r.authHandler.Refresh)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			profiles := protected.Group("/profiles")
			{
				profiles.POST("", r.profileHandler.CreateProfile)
				profiles.GET("/me", r.profileHandler.GetMyProfile)
				profiles.PATCH("/me", r.profileHandler.UpdateMyProfile)
				profiles.GET("/:user_id", r.profileHandler.GetProfileByUserID)
			}

			availability := protected.Group("/availability")
			{
				availability.GET("", r.availabilityHandler.ListSlots)
				availability.POST("", r.availabilityHandler.AddSlot)
				availability.DELETE("/:slot_id", r.availabilityHandler.DeleteSlot)
			}

			match := protected.Group("/match")
			{
				match.POST("/find", r.matchHandler.FindMatches)
				match.GET("/recommended", r.matchHandler.GetRecommended)
				match.PATCH("/:match_id", r.matchHandler.RespondToMatch)
			}
		}
	}

	return router
}
