package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/taskhive/taskhive-api/internal/auth"
	"github.com/taskhive/taskhive-api/internal/config"
	"github.com/taskhive/taskhive-api/internal/handler"
	"github.com/taskhive/taskhive-api/internal/repo"
	"github.com/taskhive/taskhive-api/internal/service"
	"github.com/taskhive/taskhive-api/internal/storage"
	"github.com/taskhive/taskhive-api/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to the database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping the database", zap.Error(err))
	}
	logger.Info("Successfully connected to the database")

	if err := runMigrations(cfg); err != nil {
		logger.Fatal("Migrations failed", zap.Error(err))
	}

	fbApp, err := auth.NewApp(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		logger.Fatal("Firebase init failed", zap.Error(err))
	}
	verifier, err := auth.NewFirebaseVerifier(ctx, fbApp)
	if err != nil {
		logger.Fatal("Firebase auth init failed", zap.Error(err))
	}

	var store storage.ObjectStore
	if cfg.StorageBucket != "" {
		store, err = storage.NewGCSStore(ctx, fbApp)
		if err != nil {
			logger.Fatal("Bucket init failed", zap.Error(err))
		}
	} else {
		logger.Warn("STORAGE_BUCKET not set, attachments held in memory")
		store = storage.NewMemoryStore()
	}

	taskRepo := repo.NewTaskRepo(pool)
	projectRepo := repo.NewProjectRepo(pool)
	attachmentRepo := repo.NewAttachmentRepo(pool)

	taskSvc := service.NewTaskService(taskRepo)
	projectSvc := service.NewProjectService(projectRepo)
	attachmentSvc := service.NewAttachmentService(attachmentRepo, taskRepo, store)
	dashboardSvc := service.NewDashboardService(taskRepo, projectRepo)

	router := handler.NewRouter(
		logger,
		verifier,
		handler.NewTaskHandler(taskSvc, logger),
		handler.NewProjectHandler(projectSvc, logger),
		handler.NewAttachmentHandler(attachmentSvc, logger),
		handler.NewDashboardHandler(dashboardSvc, logger),
		cfg.CORSOrigins,
	)

	overdue := worker.NewOverdueWorker(taskRepo, logger, cfg.OverdueCheckInterval)
	overdue.Start(ctx)

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	overdue.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Shutdown error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func runMigrations(cfg config.Config) error {
	m, err := migrate.New("file://"+cfg.MigrationsPath, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
