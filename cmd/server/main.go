package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusforge/recruit-backend/internal/config"
	"github.com/campusforge/recruit-backend/internal/database"
	"github.com/campusforge/recruit-backend/internal/handler"
	"github.com/campusforge/recruit-backend/internal/logger"
	"github.com/campusforge/recruit-backend/internal/repository"
	"github.com/campusforge/recruit-backend/internal/router"
	"github.com/campusforge/recruit-backend/internal/service"
	"github.com/campusforge/recruit-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Recruit Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	submissionRepo := repository.NewSubmissionRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)
	fileRepo := repository.NewFileRepository(pool)
	sheetRepo := repository.NewSheetRepository(pool)
	analyticsRepo := repository.NewAnalyticsRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	userService := service.NewUserService(userRepo, authService, log)
	settingService := service.NewSettingService(settingRepo, log)
	scoringService := service.NewScoringService(questionRepo, settingService, log)
	questionService := service.NewQuestionService(questionRepo, log)
	submissionService := service.NewSubmissionService(submissionRepo, fileRepo, scoringService, rdb, log)
	fileService := service.NewFileService(cfg, fileRepo, log)
	sheetService := service.NewSheetService(sheetRepo, submissionRepo, log)
	analyticsService := service.NewAnalyticsService(analyticsRepo, sheetRepo, settingService, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(userService),
		User:       handler.NewUserHandler(userService),
		Question:   handler.NewQuestionHandler(questionService, scoringService, settingService),
		Submission: handler.NewSubmissionHandler(submissionService),
		Setting:    handler.NewSettingHandler(settingService),
		File:       handler.NewFileHandler(fileService),
		Sheet:      handler.NewSheetHandler(sheetService),
		Analytics:  handler.NewAnalyticsHandler(analyticsService),
		Events:     handler.NewEventsHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
