package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"civic-reports/internal/auth"
	"civic-reports/internal/config"
	"civic-reports/internal/db"
	httphandler "civic-reports/internal/http"
	"civic-reports/internal/http/middleware"
	"civic-reports/internal/logger"
	"civic-reports/internal/repository"
	"civic-reports/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			appLogger.Fatal().Err(err).Msg("failed to connect redis")
		}
		cancel()
	} else {
		appLogger.Warn().Msg("REDIS_ADDR not set, submission rate limiting disabled")
	}

	reportRepo := repository.NewReportRepository(database)
	departmentRepo := repository.NewDepartmentRepository(database)
	userRepo := repository.NewUserRepository(database)

	tokens := auth.NewManager(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)

	reportService := service.NewReportService(reportRepo, userRepo, departmentRepo)
	analyticsService := service.NewAnalyticsService(reportRepo)
	departmentService := service.NewDepartmentService(departmentRepo)
	authService := service.NewAuthService(userRepo, tokens)

	handler := httphandler.NewHandler(reportService, analyticsService, departmentService, authService, appLogger)
	authMiddleware := middleware.Auth(tokens)
	rateLimiter := middleware.ReportRateLimiter(redisClient, cfg.RateLimit.ReportsPerDay)
	router := httphandler.NewRouter(handler, authMiddleware, rateLimiter, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting civic reports service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
