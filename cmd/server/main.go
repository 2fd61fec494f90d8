package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/nano-link/backend/internal/metrics"
	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/router"
	"github.com/anonto42/nano-link/backend/internal/services"
	"github.com/anonto42/nano-link/backend/pkg/config"
	"github.com/anonto42/nano-link/backend/pkg/firebase"
	"github.com/anonto42/nano-link/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nanolink",
	Short: "NanoLink - professional networking API server",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer config.CloseDB(db)

		if err := models.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Logger.Info().Str("driver", cfg.Database.Driver).Msg("Database schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// bootstrap loads configuration, initializes logging and opens the database.
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(logger.Config{
		Level:      cfg.Logging.Level,
		JSONOutput: cfg.Logging.Format == "json",
	})

	db, err := config.InitDB(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize database: %w", err)
	}
	return cfg, db, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer config.CloseDB(db)

	if cfg.Database.AutoMigrate {
		if err := models.Migrate(db); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		logger.Logger.Info().Msg("Database auto-migrations completed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var verifier services.FirebaseVerifier
	if cfg.Auth.FirebaseCredentialsPath != "" {
		app, err := firebase.InitFirebase(ctx, cfg.Auth.FirebaseCredentialsPath)
		if err != nil {
			return fmt.Errorf("initialize firebase: %w", err)
		}
		verifier = app.AuthClient
	}

	e := echo.New()
	e.HideBanner = true
	router.SetupMiddleware(e, cfg)
	router.SetupRoutes(e, db, cfg, verifier)

	errCh := make(chan error, 2)
	go func() {
		logger.Logger.Info().Str("port", cfg.Server.Port).Msg("API server listening")
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("api server: %w", err)
		}
	}()

	var metricsServer *http.Server
	if cfg.Server.MetricsPort != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsServer = &http.Server{
			Addr:              ":" + cfg.Server.MetricsPort,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Logger.Info().Str("port", cfg.Server.MetricsPort).Msg("Metrics server listening")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Logger.Info().Msg("Shutdown signal received")
	case err := <-errCh:
		logger.Logger.Error().Err(err).Msg("Server failed")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Warn().Err(err).Msg("Metrics server shutdown")
		}
	}
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Logger.Info().Msg("Shutdown complete")
	return nil
}
