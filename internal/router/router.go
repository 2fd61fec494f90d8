package router

import (
	"github.com/anonto42/nano-link/backend/internal/handlers"
	"github.com/anonto42/nano-link/backend/internal/middleware"
	"github.com/anonto42/nano-link/backend/internal/repositories"
	"github.com/anonto42/nano-link/backend/internal/services"
	"github.com/anonto42/nano-link/backend/pkg/config"
	"github.com/anonto42/nano-link/backend/pkg/logger"
	"github.com/anonto42/nano-link/backend/validators"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware, the validator and the
// error handler
func SetupMiddleware(e *echo.Echo, cfg *config.Config) {
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	e.Use(eMiddleware.RequestID())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			log := logger.WithComponent("http")
			var event *zerolog.Event
			if v.Status >= 500 {
				event = log.Error().Err(v.Error)
			} else {
				event = log.Info()
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORSWithConfig(eMiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
	}))
	e.Use(middleware.Metrics())

	log := logger.WithComponent("router")
	log.Info().Msg("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// firebase is nil unless the Firebase provider is configured.
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, firebase services.FirebaseVerifier) {
	log := logger.WithComponent("router")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize store and services ---
	store := repositories.NewStore(db)
	tokens := services.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := services.NewAuthService(store, tokens, firebase)

	var resolver middleware.SessionResolver = middleware.NewJWTResolver(tokens, store.Users)
	if cfg.Auth.Provider == "firebase" && firebase != nil {
		resolver = middleware.NewFirebaseResolver(firebase, store.Users)
	}

	// --- Unprotected routes for authentication ---
	authHandler := handlers.NewAuthHandler(authService)
	authHandler.RegisterAuthRoutes(e.Group("/api/v1/auth"))
	log.Info().Bool("firebase", authService.FirebaseEnabled()).Msg("Auth routes configured.")

	// --- Protected routes ---
	api := e.Group("/api/v1")
	api.Use(middleware.Authenticate(resolver))
	log.Info().Str("provider", cfg.Auth.Provider).Msg("Session middleware applied to /api/v1 group.")

	authHandler.RegisterSessionRoutes(api)

	handlers.NewConnectionHandler(services.NewConnectionService(store)).RegisterConnectionRoutes(api)
	log.Info().Msg("Connection routes configured.")

	handlers.NewPostHandler(services.NewPostService(store)).RegisterPostRoutes(api)
	log.Info().Msg("Post routes configured.")

	handlers.NewCommentHandler(services.NewCommentService(store)).RegisterCommentRoutes(api)
	log.Info().Msg("Comment routes configured.")

	handlers.NewMessagingHandler(services.NewMessagingService(store)).RegisterMessagingRoutes(api)
	log.Info().Msg("Messaging routes configured.")

	handlers.NewNotificationHandler(services.NewNotificationService(store)).RegisterNotificationRoutes(api)
	log.Info().Msg("Notification routes configured.")

	handlers.NewProfileHandler(services.NewProfileService(store)).RegisterProfileRoutes(api)
	log.Info().Msg("Profile routes configured.")

	handlers.NewSearchHandler(services.NewSearchService(store)).RegisterSearchRoutes(api)
	log.Info().Msg("Search routes configured.")

	log.Info().Msg("All routes configured.")
}
