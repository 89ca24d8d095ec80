// @title Apex Backend API
// @version 1.0
// @description Apex Backend API for car customization builds

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3001
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "APEX_BACK-END/docs" // Required for swagger
	"APEX_BACK-END/internal/config"
	"APEX_BACK-END/internal/database"
	"APEX_BACK-END/internal/handlers"
	"APEX_BACK-END/internal/middleware"
	"APEX_BACK-END/internal/repository"
	"APEX_BACK-END/internal/routes"
	"APEX_BACK-END/internal/utils"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// --- Database ---

	ctx := context.Background()
	pool, err := database.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	repo := repository.New(pool)

	if _, err := database.SeedServices(ctx, repo, logger); err != nil {
		logger.Error("failed to seed service catalog", "error", err)
		os.Exit(1)
	}

	// --- HTTP handlers ---

	var emailService handlers.EmailSender
	if cfg.IsEmailConfigured() {
		emailService = utils.NewEmailService(&cfg.Email)
	}

	h := routes.Handlers{
		Auth:           handlers.NewAuthHandler(repo, cfg),
		Builds:         handlers.NewBuildsHandler(repo, cfg, logger),
		Services:       handlers.NewServicesHandler(repo),
		Health:         handlers.NewHealthHandler(pool, cfg.AppEnv),
		ForgotPassword: handlers.NewForgotPasswordHandler(repo, repo, emailService, cfg, logger),
		GoogleAuth:     handlers.NewGoogleAuthHandler(repo, cfg),
	}

	mux := http.NewServeMux()
	routes.SetupRoutes(mux, h, &cfg.JWT)

	// Middleware chain: request ID -> logging -> security headers -> CORS -> mux
	var handler http.Handler = mux
	handler = routes.CORSHandler(&cfg.CORS, handler)
	handler = middleware.Security(cfg.IsDevelopment())(handler)
	handler = middleware.Logger(logger)(handler)
	handler = middleware.RequestID(handler)

	// --- HTTP server + graceful shutdown ---

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server listening", "port", cfg.Server.Port, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("server stopped")
}
