package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"taskboard/internal/api"
	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/pkg/auth"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "taskboard").Logger()

	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.ValidateConfig(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := database.Connect(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}()
	logger.Info().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).Msg("connected to postgres")

	if cfg.Server.AutoMigrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			logger.Fatal().Err(err).Msg("failed to run migrations")
		}
		logger.Info().Msg("migrations applied")
	}

	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TokenDuration)

	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := service.NewAuthService(userRepo, tokenManager, logger)
	boardService := service.NewBoardService(boardRepo, logger)
	taskService := service.NewTaskService(taskRepo, boardRepo, logger)

	srv := api.NewServer(cfg, logger, authService, boardService, taskService)

	go func() {
		if err := srv.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()
	logger.Info().Str("port", cfg.Server.Port).Msg("server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
	}
	logger.Info().Msg("server shutdown complete")
}
