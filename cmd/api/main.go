// @title GradLinkUp API
// @version 1.0
// @description Internship matching backend for candidates and companies.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"GradLinkUp-backend/internal/auth"
	"GradLinkUp-backend/internal/config"
	"GradLinkUp-backend/internal/database"
	"GradLinkUp-backend/internal/events"
	"GradLinkUp-backend/internal/logging"
	"GradLinkUp-backend/internal/server"
	"GradLinkUp-backend/internal/storage"
)

func gracefulShutdown(apiServer *http.Server, done chan<- struct{}) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logging.Log.Info("shutting down gracefully, press Ctrl+C again to force")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		logging.Log.WithError(err).Error("server forced to shutdown")
	}

	logging.Log.Info("server exiting")
	done <- struct{}{}
}

func main() {
	log := logging.Log

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if err := logging.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.WithError(err).Fatal("invalid logging configuration")
	}
	logging.EnableAuthLog(cfg.AuthLogging)
	logging.SetAuthLogPath(cfg.AuthLogPath)
	auth.ConfigureSecret(cfg.SecretKey)

	db, err := database.GetMainDB(cfg.DB)
	if err != nil {
		log.WithError(err).Fatal("database failed to initialize")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Warn("failed to close database")
		}
	}()

	deps := &server.MyServer{
		Config:      cfg,
		DB:          db,
		OauthConfig: auth.NewGoogleOauthConfig(cfg.Google),
		Log:         log,
	}

	if cfg.Storage.Bucket != "" {
		gcs, err := storage.NewCloudStorageClient(context.Background(), cfg.Storage.Bucket)
		if err != nil {
			log.WithError(err).Fatal("cloud storage failed to initialize")
		}
		defer gcs.Close()
		deps.Storage = gcs
	} else {
		log.Warn("BUCKET_NAME is empty, upload endpoints are disabled")
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.WithError(err).Fatal("redis is unreachable")
		}
		deps.Redis = rdb
		deps.Blacklist = auth.NewRedisBlacklistStore(rdb)
	} else {
		store := auth.NewInMemoryBlacklistStore()
		defer store.Close()
		deps.Blacklist = store
	}

	publisher := events.NewPublisher(cfg.RabbitMQURL, log)
	if closer, ok := publisher.(interface{ Close() error }); ok {
		defer closer.Close()
	}
	deps.Events = publisher

	apiServer := server.NewServer(deps)

	done := make(chan struct{}, 1)
	go gracefulShutdown(apiServer, done)

	log.WithField("addr", apiServer.Addr).Info("server started")
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("http server error")
		os.Exit(1)
	}

	<-done
	log.Info("graceful shutdown complete")
}
