package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"golang.org/x/time/rate"

	"courses-api/internal/cache"
	"courses-api/internal/config"
	"courses-api/internal/controllers"
	"courses-api/internal/database"
	"courses-api/internal/logging"
	"courses-api/internal/middleware"
	"courses-api/internal/repository"
	"courses-api/internal/routes"
	"courses-api/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if !cfg.EnvFileLoaded {
		logging.Debug().Msg("No .env file found, using environment only")
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewConnection(ctx, cfg.DatabaseURL, database.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		PingAttempts: 5,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		db.Close()
		logging.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			logging.Warn().Err(err).Msg("Redis unavailable, continuing without course cache")
			cacheClient = nil
		} else {
			logging.Info().Msg("Connected to Redis cache")
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.BcryptCost)
	courseService := service.NewCourseService(courseRepo, cacheClient, cfg.CourseCacheTTL)

	deps := routes.Dependencies{
		AuthService:      authService,
		UserController:   controllers.NewUserController(authService),
		CourseController: controllers.NewCourseController(courseService),
		QRCodeController: controllers.NewQRCodeController(cfg.FrontendURL),
		HealthController: controllers.NewHealthController(db),
	}
	if cfg.RateLimitRPS > 0 {
		deps.RateLimiter = middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
		defer deps.RateLimiter.Stop()
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logging.Error().Err(err).Msg("Server failed")
		}
	case <-ctx.Done():
		logging.Info().Msg("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if cacheClient != nil {
		err = multierr.Append(err, cacheClient.Close())
	}
	err = multierr.Append(err, db.Close())
	if err != nil {
		logging.Error().Err(err).Msg("Shutdown finished with errors")
		os.Exit(1)
	}

	logging.Info().Msg("Server stopped")
}
