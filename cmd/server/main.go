package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jbrokmeier/tagungsplan/internal/api"
	"github.com/jbrokmeier/tagungsplan/internal/config"
	"github.com/jbrokmeier/tagungsplan/internal/store"
)

func main() {
	// Optional .env for local development; the file is absent in production.
	_ = godotenv.Load()

	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err := config.LoadServer()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	users := store.NewUserStore(db)
	sessions := store.NewAuthSessionStore(db, sessionTTL)

	if purged, err := sessions.PurgeExpired(); err != nil {
		logger.Warn("purge expired sessions failed", "error", err)
	} else if purged > 0 {
		logger.Info("purged expired sessions", "count", purged)
	}

	router := api.NewRouter(db, users, sessions, cfg.StaticDir, sessionTTL, logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("conference server starting", "addr", addr, "static_dir", cfg.StaticDir)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
