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

	"github.com/rs/zerolog"
	"github.com/stemsi/qboard/internal/config"
	"github.com/stemsi/qboard/internal/database"
	"github.com/stemsi/qboard/internal/handler"
	"github.com/stemsi/qboard/internal/logger"
	"github.com/stemsi/qboard/internal/repository"
	"github.com/stemsi/qboard/internal/router"
	"github.com/stemsi/qboard/internal/service"
	"github.com/stemsi/qboard/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("store", cfg.StoreDriver).
		Msg("Starting question board backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Open Question Set Store ───────────────────────────────────────
	repo, closeRepo, err := openRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.StoreDriver).Msg("Failed to open question store")
	}
	defer closeRepo()

	// ─── Initialize Services & Handlers ────────────────────────────────
	questionService := service.NewQuestionService(repo, log)
	handlers := &router.Handlers{
		Question: handler.NewQuestionHandler(questionService, cfg.MaxBodyBytes, log),
		Health:   handler.NewHealthHandler(repo.Driver()),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg, log)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", "http://localhost:"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// openRepository builds the store selected by STORE_DRIVER. The returned
// close func releases any connection the store holds.
func openRepository(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.QuestionSetRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverFile:
		log.Info().Str("path", cfg.DataFile).Msg("Using file store")
		return repository.NewFileRepository(cfg.DataFile), func() {}, nil

	case config.StoreDriverMemory:
		log.Warn().Msg("Using memory store: questions are lost on restart or redeploy")
		return repository.NewMemoryRepository(), func() {}, nil

	case config.StoreDriverRedis:
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisRepository(rdb, cfg.RedisKey), func() { rdb.Close() }, nil

	case config.StoreDriverPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresRepository(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
