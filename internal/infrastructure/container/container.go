package container

import (
	"context"
	"fmt"

	"github.com/gdugdh24/sparring-backend/internal/config"
	"github.com/gdugdh24/sparring-backend/internal/delivery/http"
	"github.com/gdugdh24/sparring-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/sparring-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/sparring-backend/internal/infrastructure/database"
	"github.com/gdugdh24/sparring-backend/internal/infrastructure/events"
	"github.com/gdugdh24/sparring-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/sparring-backend/internal/infrastructure/server"
	"github.com/gdugdh24/sparring-backend/internal/repository"
	"github.com/gdugdh24/sparring-backend/internal/repository/postgres"
	redisrepo "github.com/gdugdh24/sparring-backend/internal/repository/redis"
	"github.com/gdugdh24/sparring-backend/internal/usecase/auth"
	"github.com/gdugdh24/sparring-backend/internal/usecase/availability"
	"github.com/gdugdh24/sparring-backend/internal/usecase/match"
	"github.com/gdugdh24/sparring-backend/internal/usecase/profile"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.GeminiClient
	Logger *zap.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	c := &Container{
		Config: cfg,
		DB:     db,
		Logger: log,
	}

	// Redis backs token revocation and match events; both degrade gracefully without it.
	var (
		blacklist repository.TokenBlacklist
		publisher match.EventPublisher
	)
	if cfg.Redis.Enabled() {
		rdb, err := database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Redis = rdb
		blacklist = redisrepo.NewTokenBlacklist(rdb)
		publisher = events.NewRedisPublisher(rdb)
	} else {
		log.Warn("redis disabled: logout cannot revoke tokens and match events are not published")
	}

	// The generator stays a nil interface when no key is configured so the
	// refiner takes its no-credential path.
	var generator match.TextGenerator
	if cfg.AI.APIKey != "" {
		geminiClient, err := gemini.NewGeminiClient(ctx, cfg.AI.APIKey)
		if err != nil {
			// A key is configured, so refinements must report a failure rather than a missing key.
			log.Warn("gemini client unavailable, refinements will use the failure fallback", zap.Error(err))
			generator = gemini.UnavailableGenerator{Err: err}
		} else {
			c.Gemini = geminiClient
			generator = geminiClient
		}
	} else {
		log.Info("GEMINI_API_KEY not set, using rule-based scores only")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	availabilityRepo := postgres.NewAvailabilityRepository(db)
	matchRepo := postgres.NewMatchRepository(db)

	// Initialize use cases
	tokens := auth.NewTokenManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry(),
		cfg.JWT.RefreshExpiry(),
	)
	authUseCase := auth.NewAuthUseCase(userRepo, tokens, blacklist, log.Named("auth"))
	profileUseCase := profile.NewProfileUseCase(profileRepo)
	availabilityUseCase := availability.NewAvailabilityUseCase(availabilityRepo)
	refiner := match.NewRefiner(generator, cfg.AI.Model, cfg.AI.Timeout, log.Named("refiner"))
	matchUseCase := match.NewMatchUseCase(
		profileRepo,
		availabilityRepo,
		matchRepo,
		refiner,
		publisher,
		log.Named("match"),
	)

	// Initialize handlers
	httpLog := log.Named("http")
	authHandler := handler.NewAuthHandler(authUseCase, httpLog)
	profileHandler := handler.NewProfileHandler(profileUseCase, httpLog)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUseCase, httpLog)
	matchHandler := handler.NewMatchHandler(matchUseCase, httpLog)

	authMiddleware := middleware.NewAuthMiddleware(authUseCase, httpLog)

	if err := http.RegisterValidators(); err != nil {
		c.Close()
		return nil, err
	}

	router := http.NewRouter(
		authHandler,
		profileHandler,
		availabilityHandler,
		matchHandler,
		authMiddleware,
		httpLog,
		cfg.IsDevelopment(),
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), log)
	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			c.Logger.Warn("error closing gemini client", zap.Error(err))
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
