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

	"orders/api"
	"orders/cmd"
	"orders/internal/adapters/in/http/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Fatal("service failed", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	config, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	openapiDoc, err := api.LoadDocument(context.Background())
	if err != nil {
		return err
	}

	root := cmd.NewCompositionRoot(config, logger)
	defer root.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.AuthGate(root.CreateTokenValidator(), logger.With(zap.String("component", "auth_gate"))))
	root.CreateHTTPServer(openapiDoc).RegisterRoutes(e)

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("port", config.HTTPPort))
		errCh <- e.Start("0.0.0.0:" + config.HTTPPort)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := e.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}
