package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/menucraft/backend/config"
	"github.com/menucraft/backend/internal/database"
	"github.com/menucraft/backend/internal/server"
	"github.com/menucraft/backend/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Info("Loaded environment from .env")
	}
	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	logoStorage, err := buildLogoStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logo storage: %v", err)
	}

	srv := server.New(cfg, db, redisClient, logoStorage)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Info("Server stopped")
}

func buildLogoStorage(cfg *config.Config) (service.LogoStorage, error) {
	if cfg.S3BucketName != "" {
		s3cfg, err := config.NewS3Config(context.Background(), cfg.S3BucketName)
		if err != nil {
			return nil, err
		}
		return service.NewS3LogoStorage(s3cfg), nil
	}
	return service.NewLocalLogoStorage(cfg.UploadDir)
}

func setupLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}
