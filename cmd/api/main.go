package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/certhub/internal/audit"
	"github.com/BruksfildServices01/certhub/internal/config"
	dbpkg "github.com/BruksfildServices01/certhub/internal/db"
	"github.com/BruksfildServices01/certhub/internal/logging"
	"github.com/BruksfildServices01/certhub/internal/routes"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		logging.Log.Fatalf("invalid configuration: %v", err)
	}

	if err := logging.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		logging.Log.Fatalf("invalid logging configuration: %v", err)
	}

	db := dbpkg.NewDB(cfg)
	rdb := dbpkg.NewRedis(cfg)

	auditDispatcher := audit.NewDispatcher(audit.New(db))

	r := gin.New()
	r.Use(gin.Recovery())

	if err := routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Redis:  rdb,
		Audit:  auditDispatcher,
		Config: cfg,
	}); err != nil {
		logging.Log.Fatalf("failed to register routes: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Log.Infof("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logging.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Log.WithError(err).Error("server shutdown")
	}

	auditDispatcher.Close()

	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
