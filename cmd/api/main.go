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

	"github.com/caioogatalabs/dashboard-workshop/internal/app"
	"github.com/caioogatalabs/dashboard-workshop/internal/config"
	"github.com/caioogatalabs/dashboard-workshop/internal/export"
	"github.com/caioogatalabs/dashboard-workshop/internal/logger"
	"github.com/caioogatalabs/dashboard-workshop/internal/server"
)

// @title           Family Finance Dashboard API
// @version         1.0
// @description     Aggregates a family's transactions, accounts, cards and goals into dashboard figures.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	application, err := app.Open(cfg, time.Now())
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Errorw("failed to close database", "error", err)
		}
	}()

	formatter, err := export.NewFormatter(cfg.CurrencySymbol, cfg.Locale)
	if err != nil {
		return fmt.Errorf("failed to create formatter: %w", err)
	}

	router := server.NewRouter(server.NewServices(application.Store, cfg.SummaryCache), formatter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("Starting dashboard API on port %s", cfg.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Infow("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
