// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dkpharma/asset-registry/internal/config"
	"github.com/dkpharma/asset-registry/internal/database"
	"github.com/dkpharma/asset-registry/internal/jobs"
	"github.com/dkpharma/asset-registry/internal/relay"
	"github.com/dkpharma/asset-registry/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close(db)

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := relay.NewHub()
	syncer := router.NewIdentitySyncer(db, cfg)

	// Initialize router
	r := router.Initialize(db, cfg, hub, syncer)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Background identity sync
	syncCtx, cancelSync := context.WithCancel(context.Background())
	defer cancelSync()
	if cfg.Sync.Enabled {
		go runSyncLoop(syncCtx, cfg, syncer)
	}

	// Start server in a goroutine
	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server")

	cancelSync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}

// runSyncLoop runs the identity sync once at startup and then on the
// configured interval until the context is cancelled.
func runSyncLoop(ctx context.Context, cfg *config.Config, syncer *jobs.IdentitySyncer) {
	interval := time.Duration(cfg.Sync.Interval) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	if _, err := syncer.Run(ctx); err != nil {
		logrus.WithError(err).Warn("initial identity sync failed")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := syncer.Run(ctx); err != nil {
				logrus.WithError(err).Warn("scheduled identity sync failed")
			}
		}
	}
}
