package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lakshaya-counselling/assessment-backend/internal/config"
	"github.com/lakshaya-counselling/assessment-backend/internal/database"
	"github.com/lakshaya-counselling/assessment-backend/internal/handler"
	"github.com/lakshaya-counselling/assessment-backend/internal/logger"
	"github.com/lakshaya-counselling/assessment-backend/internal/repository"
	"github.com/lakshaya-counselling/assessment-backend/internal/router"
	"github.com/lakshaya-counselling/assessment-backend/internal/scoring"
	"github.com/lakshaya-counselling/assessment-backend/internal/service"
	"github.com/lakshaya-counselling/assessment-backend/internal/validator"
	"github.com/lakshaya-counselling/assessment-backend/internal/worker"
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
		Msg("Starting Assessment Backend")

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
	adminRepo := repository.NewAdminRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	responseRepo := repository.NewResponseRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	invitationRepo := repository.NewInvitationRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Scoring Engine ─────────────────────────────────────
	loader := scoring.NewLoader(cfg.DataDir)
	engine := scoring.NewEngine(loader)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService)
	adminService := service.NewAdminService(adminRepo, roleRepo, authService)
	catalogService := service.NewCatalogService(loader, rdb, log)
	submissionService := service.NewSubmissionService(engine, userRepo, responseRepo, progressRepo, rdb, log)
	inviteService := service.NewInviteService(invitationRepo, cfg, log)
	contactService := service.NewContactService(contactRepo)
	dashboardService := service.NewDashboardService(dashboardRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:           handler.NewAuthHandler(authService, userService, adminService),
		UserPortal:     handler.NewUserPortalHandler(userService, catalogService, submissionService),
		AdminCandidate: handler.NewAdminCandidateHandler(userService, authService),
		Admin:          handler.NewAdminHandler(dashboardService, submissionService, inviteService, contactService, catalogService),
		AdminAccount:   handler.NewAdminAccountHandler(adminService),
		Contact:        handler.NewContactHandler(contactService),
		WS:             handler.NewWSHandler(rdb, userService, submissionService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	resultWorker := worker.NewResultWorker(responseRepo, userRepo, rdb, log)
	progressWorker := worker.NewProgressWorker(progressRepo, rdb, log)

	go resultWorker.Start(workerCtx)
	go progressWorker.Start(workerCtx)

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// Load every question payload into Redis BEFORE accepting traffic so
	// first requests don't pay the disk read and sanitize pass.
	catalogService.PrewarmAll(ctx)

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

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
