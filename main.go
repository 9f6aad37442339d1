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

	"github.com/gin-gonic/gin"
	"github.com/josuebusta/portfolio/config"
	"github.com/josuebusta/portfolio/handler"
	"github.com/josuebusta/portfolio/logger"
	"github.com/josuebusta/portfolio/metrics"
	"github.com/josuebusta/portfolio/middleware"
	"github.com/josuebusta/portfolio/repository"
	"github.com/josuebusta/portfolio/service"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(logger.Config{
		ServiceName: "portfolio",
		Environment: cfg.Environment,
		LogFilePath: cfg.LogFilePath,
		HMACKey:     cfg.LogHMACKey,
		MaxSizeMB:   cfg.LogMaxSizeMB,
		MaxBackups:  cfg.LogMaxBackups,
		MaxAgeDays:  cfg.LogMaxAgeDays,
	})

	logger.Info(logger.EventServiceStartup, "Portfolio service starting", logger.Fields(
		"port", cfg.ServerPort,
		"environment", cfg.Environment,
		"strict_replace", cfg.StrictReplace,
	))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal(logger.EventDBError, "Failed to connect to MongoDB", logger.Fields("error", err.Error()))
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal(logger.EventDBError, "Failed to ping MongoDB", logger.Fields("error", err.Error()))
	}
	logger.Info(logger.EventDBConnection, "Success! You are now connected to the music library database!", logger.Fields(
		"database", cfg.MongoDatabase,
	))

	db := client.Database(cfg.MongoDatabase)

	albumRepo := repository.NewAlbumRepository(db)
	albumService := service.NewAlbumService(albumRepo, service.Options{StrictReplace: cfg.StrictReplace})
	m := metrics.New()
	albumHandler := handler.NewAlbumHandler(albumService, m)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Albums:       albumHandler,
		Metrics:      m,
		RateLimiter:  rateLimiter,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(logger.EventServiceStartup, fmt.Sprintf("Server listening on port %s...", cfg.ServerPort), logger.Fields("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if ok {
			logger.Error(logger.EventGeneral, "Failed to start server", logger.Fields("error", err.Error()))
		}
	case sig := <-quit:
		logger.Info(logger.EventServiceShutdown, "Server shutting down...", logger.Fields("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(logger.EventServiceShutdown, "Graceful shutdown failed", logger.Fields("error", err.Error()))
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Error(logger.EventDBError, "Error disconnecting from MongoDB", logger.Fields("error", err.Error()))
	}
	logger.Info(logger.EventServiceShutdown, "Portfolio service stopped", nil)
}
