package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/rachaconta/backend/internal/auth"
	"github.com/rachaconta/backend/internal/config"
	"github.com/rachaconta/backend/internal/form"
	"github.com/rachaconta/backend/internal/metrics"
	"github.com/rachaconta/backend/internal/middleware"
	"github.com/rachaconta/backend/internal/service"
	"github.com/rachaconta/backend/internal/storage/sqlite"
	"github.com/rachaconta/backend/internal/suggest"
	"github.com/rachaconta/backend/pkg/logging"
)

const sessionDuration = 24 * time.Hour

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	cfg, err := config.Load(getEnv("CONFIG_PATH", "./config.yaml"))
	if err != nil {
		logging.Setup()
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.Server.LogLevel))

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	// Shared AI client from the environment credential; a credential saved
	// through the API takes precedence per request.
	suggestClient, err := suggest.New(context.Background(), cfg.AI.APIKey, suggest.WithModel(cfg.AI.Model))
	if err != nil {
		slog.Error("Failed to initialize suggestion client", "error", err)
		os.Exit(1)
	}
	if cfg.AI.APIKey == "" {
		slog.Warn("No environment AI credential configured; suggestions require a saved key")
	}

	// Optional password protection for credential writes
	gate, err := auth.NewPasswordGate(cfg.Auth.Password)
	if err != nil {
		slog.Error("Failed to configure password protection", "error", err)
		os.Exit(1)
	}
	var jwtManager *auth.JWTManager
	if gate != nil {
		jwtManager = auth.NewJWTManager(cfg.Auth.TokenSecret, sessionDuration)
		slog.Info("Credential writes are password protected")
	}

	mux := http.NewServeMux()
	service.NewFormService(form.New()).Register(mux)
	service.NewSplitService(store).Register(mux)
	service.NewSuggestService(suggestClient, store).Register(mux)
	service.NewCredentialService(store, jwtManager).Register(mux)
	service.NewAuthService(gate, jwtManager).Register(mux)
	mux.Handle("GET /metrics", metrics.Handler())

	// Add logging and CORS middleware
	handler := middleware.Logging(middleware.CORS(mux))

	// Wrap with h2c so HTTP/2 clients work without TLS
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Server.ListenAddr, "model", cfg.AI.Model)
	if err := http.ListenAndServe(cfg.Server.ListenAddr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
