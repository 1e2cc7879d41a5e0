package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"algopulse/internal/coach"
	"algopulse/internal/config"
	"algopulse/internal/database"
	"algopulse/internal/handlers"
	"algopulse/internal/logger"
	"algopulse/internal/repository"
	"algopulse/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog := logger.New(cfg.LogLevel, cfg.LogPath)
	defer zlog.Sync()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	zlog.Info("database connection established", zap.String("type", cfg.DatabaseType))

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize the persistence gateway
	storeRepo := repository.NewStoreRepository(db, zlog)

	// Save-failure notifications are optional; a broken notifier must not
	// stop the tracker itself.
	notifier, err := service.NewNotifyService(context.Background(), cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.SESToEmail, zlog)
	if err != nil {
		zlog.Warn("notify service unavailable, save failures will only be logged", zap.Error(err))
		notifier = nil
	}

	// Initialize the session owner and pull persisted state into memory
	progressService := service.NewProgressService(storeRepo, notifierOrNil(notifier), zlog)
	progressService.Load()

	// Coaching enrichment
	coachClient := coach.NewClient(coach.Config{
		BaseURL: cfg.CoachBaseURL,
		APIKey:  cfg.CoachAPIKey,
		Model:   cfg.CoachModel,
		Timeout: cfg.CoachTimeout,
	}, zlog)

	// Initialize handlers
	progressHandler := handlers.NewProgressHandler(progressService)
	dashboardHandler := handlers.NewDashboardHandler(progressService, coachClient)

	// Setup routes
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/problems", progressHandler.LogSolve)
	mux.HandleFunc("GET /api/problems", progressHandler.ListProblems)
	mux.HandleFunc("POST /api/problems/{id}/review", progressHandler.SubmitReview)
	mux.HandleFunc("GET /api/stats", progressHandler.GetStats)
	mux.HandleFunc("GET /api/queue", progressHandler.GetQueue)
	mux.HandleFunc("GET /api/dashboard", dashboardHandler.Dashboard)
	mux.HandleFunc("GET /api/charts", dashboardHandler.Charts)
	mux.HandleFunc("GET /api/badges", dashboardHandler.BadgeGallery)
	mux.HandleFunc("GET /api/insights", dashboardHandler.Insights)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}

	zlog.Info("server stopped")
}

// notifierOrNil keeps the typed-nil pitfall out of the service: a nil
// *NotifyService must become a nil interface, not a non-nil interface
// holding a nil pointer.
func notifierOrNil(n *service.NotifyService) service.Notifier {
	if n == nil {
		return nil
	}
	return n
}
