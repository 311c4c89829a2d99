package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"wordapp/config"
	"wordapp/internal/session"
	"wordapp/pkg/logger"
	"wordapp/router"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.Env)
	defer logger.Log.Sync()

	if envErr != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The session provider owns the sign-in flow and keeps its token fresh
	// until shutdown cancels the context.
	sessions := session.NewProvider(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.RedirectURL,
		session.NewFileStore(cfg.TokenPath),
	)
	go sessions.Run(ctx, 10*time.Minute)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.Setup(cfg, sessions),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Sugar.Infof("Server running in %s mode on port %s", cfg.Env, cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Sugar.Fatalf("Server failed: %v", err)
	}
}
