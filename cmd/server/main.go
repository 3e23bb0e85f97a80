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

	"juris_control_go/config"
	"juris_control_go/handlers"
	"juris_control_go/logging"
	"juris_control_go/middleware"
	"juris_control_go/services"
	"juris_control_go/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Open the table store
	store, err := services.OpenStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open table store", zap.Error(err))
	}
	defer store.Close()

	loc := cfg.Location()
	api := handlers.New(store, logger, loc)

	// Scheduled inactivity scan
	if cfg.JobsEnabled {
		scheduler, err := jobs.StartScheduler(cfg.InactivitySchedule, loc, api.Monitor, logger)
		if err != nil {
			logger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer scheduler.Stop()
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(middleware.RequestContext(logger))

	writeLimiter := middleware.NewWriteRateLimiter(cfg.WriteRateLimit)
	defer writeLimiter.Stop()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	api.Register(e.Group("/api"), writeLimiter.Middleware())

	// Start server
	go func() {
		logger.Info("server starting", zap.String("port", cfg.ServerPort), zap.String("backend", cfg.StoreBackend))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
