package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-pkgz/lgr"

	"taskboard/internal/api"
	"taskboard/internal/config"
	"taskboard/internal/observability"
	"taskboard/internal/service"
	"taskboard/internal/storage"
	"taskboard/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		lgr.Fatalf("[ERROR] config: %v", err)
	}
	setupLog(cfg.Debug)
	log := lgr.Default()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, release, err := storage.Open(ctx, cfg, log)
	if err != nil {
		lgr.Fatalf("[ERROR] open store: %v", err)
	}
	defer release()

	metrics := observability.NewMetrics(cfg.MetricsNamespace)
	server := api.New(cfg, service.New(store), metrics, log)

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lgr.Printf("[INFO] taskboard %s listening on %s", version.String(), cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lgr.Printf("[ERROR] listen: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	lgr.Printf("[INFO] shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		lgr.Printf("[WARN] graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}
	lgr.Printf("[INFO] shutdown complete")
}

func setupLog(debug bool) {
	opts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.Out(os.Stdout)}
	if debug {
		opts = append(opts, lgr.Debug, lgr.CallerFile, lgr.CallerFunc)
	}
	lgr.Setup(opts...)
}
