package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/babynest/assistant/api"
	"github.com/babynest/assistant/assistant"
	"github.com/babynest/assistant/cleanup"
	"github.com/babynest/assistant/config"
	"github.com/babynest/assistant/genai"
	"github.com/babynest/assistant/prompt"
	"github.com/babynest/assistant/store"
	"github.com/babynest/assistant/telemetry"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	if _, err := telemetry.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryShutdown, err := telemetry.Init(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}
	defer telemetryShutdown()

	slog.Info("starting assistant backend",
		"port", cfg.HTTPPort,
		"database", cfg.DatabaseURL,
		"model", cfg.ModelName,
		"retention", cfg.RetentionHorizon)

	if cfg.ModelAPIKey == "" {
		slog.Warn("MODEL_API_KEY is not set; model calls may be rejected")
	}

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize model client and prompt assembler
	model := genai.NewClient(cfg.ModelBaseURL, cfg.ModelAPIKey, cfg.ModelName, cfg.ModelTimeout)
	assembler := prompt.NewAssembler(prompt.WithHistoryWindow(cfg.HistoryWindow))

	// Initialize service
	svc := assistant.New(db, model, assembler, cfg)

	// Background expiry sweep, independent of request traffic
	cleanup.StartWorker(ctx, svc, cfg.CleanupInterval)

	// Initialize handler
	h := api.NewHandler(svc)

	server := echo.New()
	server.HideBanner = true

	// Middleware
	server.Use(middleware.Logger())
	server.Use(middleware.Recover())
	server.Use(middleware.CORS())

	h.RegisterRoutes(server)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	slog.Info("assistant backend started", "port", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down assistant backend")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server gracefully", "error", err)
	}

	slog.Info("assistant backend stopped")
}
