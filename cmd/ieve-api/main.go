package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/ieve-api/api/swagger"
	"github.com/noah-isme/ieve-api/internal/handler"
	"github.com/noah-isme/ieve-api/internal/repository"
	"github.com/noah-isme/ieve-api/internal/service"
	"github.com/noah-isme/ieve-api/pkg/cache"
	"github.com/noah-isme/ieve-api/pkg/config"
	"github.com/noah-isme/ieve-api/pkg/database"
	"github.com/noah-isme/ieve-api/pkg/logger"
)

// @title IEVE API
// @version 1.0.0
// @description Student tardiness and absence tracking backend
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "driver", cfg.Database.Driver, "error", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db, cfg.Database.Driver, logr); err != nil {
			logr.Sugar().Fatalw("migrations failed", "error", err)
		}
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled && redisClient != nil)

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	absenceRepo := repository.NewAbsenceRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	userSvc := service.NewUserService(userRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, cacheSvc, validate, logr)
	studentSvc := service.NewStudentService(service.StudentServiceDeps{
		Students:   studentRepo,
		Users:      userRepo,
		Enrollment: enrollmentRepo,
		Cache:      cacheSvc,
		Metrics:    metrics,
		Validator:  validate,
		Logger:     logr,
	})
	absenceSvc := service.NewAbsenceService(absenceRepo, cacheSvc, metrics, validate, logr)
	reportSvc := service.NewReportService(studentRepo, courseRepo, absenceRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)

	if cacheSvc.Enabled() && cfg.Dashboard.RefreshSchedule != "" {
		refresher, err := service.NewDashboardRefresher(cfg.Dashboard.RefreshSchedule, reportSvc, metrics, logr)
		if err != nil {
			logr.Sugar().Fatalw("invalid dashboard refresh schedule", "schedule", cfg.Dashboard.RefreshSchedule, "error", err)
		}
		refresher.Start()
		defer refresher.Stop()
	}

	router := handler.NewRouter(cfg, logr, handler.Handlers{
		Students: handler.NewStudentHandler(studentSvc),
		Courses:  handler.NewCourseHandler(courseSvc),
		Absences: handler.NewAbsenceHandler(absenceSvc),
		Users:    handler.NewUserHandler(userSvc),
		Reports:  handler.NewReportHandler(reportSvc),
		Metrics:  handler.NewMetricsHandler(metrics),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
