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

	"github.com/iammorganparry/working-memory/internal/api"
	"github.com/iammorganparry/working-memory/internal/clock"
	"github.com/iammorganparry/working-memory/internal/config"
	"github.com/iammorganparry/working-memory/internal/prefs"
	"github.com/iammorganparry/working-memory/internal/session"
	"github.com/iammorganparry/working-memory/internal/store"
	"github.com/iammorganparry/working-memory/internal/summary"
	"github.com/iammorganparry/working-memory/internal/timer"
	"github.com/iammorganparry/working-memory/internal/tracker"
)

func main() {
	// Logger
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// SQLite snapshot store
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	persister := store.NewSessionStore(db)

	// Core components
	sessions := session.NewStore()
	controller := timer.New(clock.System())
	gateway := summary.NewClient(cfg.AgentBaseURL, time.Duration(cfg.AgentTimeoutSec)*time.Second)

	svc := tracker.New(
		controller, sessions, gateway, persister,
		cfg.UserID, cfg.WorkspacePath, cfg.SummaryEnabled, logger,
	)
	if err := svc.LoadPersisted(); err != nil {
		logger.Error("failed to load persisted sessions", "error", err)
		os.Exit(1)
	}
	logger.Info("sessions loaded", "count", svc.SessionCount())

	// Theme preference
	prefStore := prefs.NewStore(cfg.PrefsPath)

	// Router
	router := api.NewRouter(svc, prefStore, time.Local, logger)

	// Server
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // stop waits on the summarization agent
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("working memory server starting", "addr", addr, "workspace", cfg.WorkspacePath)
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
