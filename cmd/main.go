package main

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/nocturnedev/auth-service/config"
	"github.com/nocturnedev/auth-service/db"
	"github.com/nocturnedev/auth-service/internal/auth/handler"
	repo "github.com/nocturnedev/auth-service/internal/auth/repository/postgres"
	"github.com/nocturnedev/auth-service/internal/auth/service"
	"github.com/nocturnedev/auth-service/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	ctx := context.Background()

	if err := db.Migrate(cfg.DBURL); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	userRepo := repo.NewUserRepository(pool)
	tokenRepo := repo.NewRefreshTokenRepository(pool)
	blacklistRepo := repo.NewTokenBlacklistRepository(pool)
	attemptRepo := repo.NewLoginAttemptRepository(pool)

	tokenService := service.NewTokenService(
		cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessTokenExpiry(), cfg.RefreshTokenExpiry(),
	)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	authService := service.NewAuthService(
		userRepo, tokenRepo, blacklistRepo, attemptRepo,
		tokenService, hasher, cfg,
	)

	cleanup := service.NewCleanupService(tokenRepo, blacklistRepo, attemptRepo, cfg.LoginAttemptRetention())
	if err := cleanup.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start cleanup scheduler")
	}
	defer cleanup.Stop()

	authHandler := handler.NewAuthHandler(authService)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	logger.Info().Str("port", cfg.Port).Msg("auth service listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
