package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/familyllc/recipe-manager/backend/config"
	"github.com/familyllc/recipe-manager/backend/internal/api"
	"github.com/familyllc/recipe-manager/backend/internal/database"
	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/internal/observability"
	"github.com/familyllc/recipe-manager/backend/internal/repository"
	"github.com/familyllc/recipe-manager/backend/internal/server"
	"github.com/familyllc/recipe-manager/backend/internal/service"
	"github.com/familyllc/recipe-manager/backend/migrations"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	shutdownTracing := observability.InitOTel(ctx, appLog, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		Environment: string(cfg.Environment),
	})

	db, err := database.Open(cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db, migrations.FS, appLog); err != nil {
		appLog.Fatal("Failed to migrate database", "error", err)
	}

	deps := server.Dependencies{}

	redisClient, err := database.NewRedisClient(cfg, appLog)
	if err != nil {
		appLog.Warn("Redis unavailable, continuing without rate limiting", "error", err)
	} else if redisClient != nil {
		defer redisClient.Close()
		deps.Redis = redisClient
	}

	var store service.ObjectStore
	if cfg.S3BucketName != "" {
		s3Cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			appLog.Warn("S3 unavailable, recipe image uploads disabled", "error", err)
		} else {
			store = s3Cfg
		}
	}

	if cfg.JWTSecret != "" {
		deps.Tokens = service.NewTokenService(cfg.JWTSecret)
	}

	recipes := service.NewRecipeService(repository.NewRecipeRepository(db, appLog), appLog)
	deps.Services = api.Services{
		DB:      db,
		Recipes: recipes,
		Images:  service.NewImageService(store, recipes, appLog),
		Tasks:   service.NewTaskService(repository.NewTaskRepository(db, appLog), appLog),
	}

	srv := server.New(cfg, deps, appLog)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			appLog.Fatal("Server error", "error", err)
		}
	case sig := <-quit:
		appLog.Info("Received signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server shutdown error", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLog.Warn("Tracer shutdown error", "error", err)
	}
	appLog.Info("Server stopped")
}
