package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ekediee/course-allocation-backend/internal/config"
	"github.com/Ekediee/course-allocation-backend/internal/database"
	"github.com/Ekediee/course-allocation-backend/internal/handler"
	"github.com/Ekediee/course-allocation-backend/internal/logger"
	"github.com/Ekediee/course-allocation-backend/internal/mailer"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
	"github.com/Ekediee/course-allocation-backend/internal/router"
	"github.com/Ekediee/course-allocation-backend/internal/service"
	"github.com/Ekediee/course-allocation-backend/internal/umis"
	"github.com/Ekediee/course-allocation-backend/internal/validator"
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
		Msg("Starting Course Allocation Backend")

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
	bulletinRepo := repository.NewBulletinRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	semesterRepo := repository.NewSemesterRepository(pool)
	schoolRepo := repository.NewSchoolRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	programRepo := repository.NewProgramRepository(pool)
	levelRepo := repository.NewLevelRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	slotRepo := repository.NewProgramCourseRepository(pool)
	lecturerRepo := repository.NewLecturerRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	allocationRepo := repository.NewAllocationRepository(pool)
	stateRepo := repository.NewAllocationStateRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)
	overviewRepo := repository.NewOverviewRepository(pool)

	// ─── External Clients ──────────────────────────────────────────────
	umisClient := umis.NewClient(cfg.UMISBaseURL, cfg.UMISTimeout, log)
	mail := mailer.New(cfg, log)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	scopeService := service.NewScopeService(sessionRepo, bulletinRepo, semesterRepo,
		slotRepo, allocationRepo, stateRepo, departmentRepo)
	allocationService := service.NewAllocationService(cfg, rdb, scopeService,
		slotRepo, allocationRepo, lecturerRepo, stateRepo, semesterRepo, programRepo)
	workflowService := service.NewWorkflowService(rdb, sessionRepo, stateRepo, allocationRepo)
	overviewService := service.NewOverviewService(rdb, log, sessionRepo, bulletinRepo,
		semesterRepo, departmentRepo, stateRepo, userRepo, overviewRepo)
	umisService := service.NewUMISService(umisClient, rdb, log, authService, scopeService,
		allocationRepo, semesterRepo, lecturerRepo, userRepo, departmentRepo)
	userService := service.NewUserService(log, userRepo, authService, mail)
	bulletinService := service.NewBulletinService(bulletinRepo)
	sessionService := service.NewSessionService(sessionRepo)
	semesterService := service.NewSemesterService(semesterRepo)
	schoolService := service.NewSchoolService(schoolRepo)
	departmentService := service.NewDepartmentService(departmentRepo)
	programService := service.NewProgramService(programRepo)
	levelService := service.NewLevelService(levelRepo)
	courseService := service.NewCourseService(courseRepo, slotRepo, bulletinRepo)
	lecturerService := service.NewLecturerService(lecturerRepo)
	settingService := service.NewSettingService(settingRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(userService, umisService),
		Allocation: handler.NewAllocationHandler(scopeService, allocationService),
		Workflow:   handler.NewWorkflowHandler(workflowService),
		Overview:   handler.NewOverviewHandler(overviewService),
		UMIS:       handler.NewUMISHandler(umisService),
		Catalog: handler.NewCatalogHandler(schoolService, departmentService, programService,
			levelService, semesterService, bulletinService, sessionService),
		Course:   handler.NewCourseHandler(courseService),
		Lecturer: handler.NewLecturerHandler(lecturerService),
		User:     handler.NewUserHandler(userService),
		Setting:  handler.NewSettingHandler(settingService),
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
