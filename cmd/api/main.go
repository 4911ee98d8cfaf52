package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shift-scheduler/internal/audit"
	"github.com/BruksfildServices01/shift-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/shift-scheduler/internal/db"
	"github.com/BruksfildServices01/shift-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/shift-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/shift-scheduler/internal/jobs"
	"github.com/BruksfildServices01/shift-scheduler/internal/logging"
	"github.com/BruksfildServices01/shift-scheduler/internal/media"
	"github.com/BruksfildServices01/shift-scheduler/internal/middleware"
	"github.com/BruksfildServices01/shift-scheduler/internal/notify"
	"github.com/BruksfildServices01/shift-scheduler/internal/routes"
	"github.com/BruksfildServices01/shift-scheduler/internal/timezone"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.Environment)
	timezone.Set(cfg.Timezone)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		slog.Error("database init failed", "error", err)
		os.Exit(1)
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	var marker notify.Marker = notify.NewMemoryMarker()
	rdb, err := cache.NewRedis(cfg)
	switch {
	case err != nil:
		slog.Warn("redis unavailable, using in-process notification markers", "error", err)
	case rdb != nil:
		defer rdb.Close()
		marker = notify.NewRedisMarker(rdb)
	}

	var storage media.Storage
	if cfg.StorageEnabled() {
		storage = media.NewS3Storage(cfg)
	}

	mailer := notify.NewMailer(cfg)
	mails := notify.NewDispatcher(mailer)
	auditDispatcher := audit.NewDispatcher(audit.New(db))

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		httpresp.OK(c, gin.H{"status": "ok"})
	})

	notifications := routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Audit:   auditDispatcher,
		Mailer:  mailer,
		Mails:   mails,
		Marker:  marker,
		Storage: storage,
	})

	scheduler, err := jobs.Start(cfg, notifications)
	if err != nil {
		slog.Error("cron init failed", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// handlers still running after a timed out Shutdown drop their events
	mails.Close()
	auditDispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}
}
