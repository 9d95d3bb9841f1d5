package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/georgemunganga/storefront-backend/internal/infra/config"
	"github.com/georgemunganga/storefront-backend/internal/infra/database"
	"github.com/georgemunganga/storefront-backend/internal/infra/logging"
	"github.com/georgemunganga/storefront-backend/internal/infra/middleware"
	"github.com/georgemunganga/storefront-backend/internal/infra/migrations"
	"github.com/georgemunganga/storefront-backend/internal/modules/seed"
	"github.com/georgemunganga/storefront-backend/internal/modules/storefront"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return err
	}
	defer log.Sync()

	// Prices go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Database ────────────────────────────────────────────
	db, err := database.Open(ctx, cfg.Database.URL, database.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("connected to database")

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db.DB); err != nil {
			return err
		}
		log.Info("migrations applied")
	}

	// ── Services ────────────────────────────────────────────
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(reg)
	svc := newServices(db, metrics)

	if cfg.SeedDemo {
		if _, err := seed.Run(ctx, svc.seed(), log); err != nil {
			return err
		}
	}
	if !storefront.Exists(cfg.Server.StaticDir) {
		log.Warn("no storefront bundle found", zap.String("static_dir", cfg.Server.StaticDir))
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	limiter.StartCleanup(5*time.Minute, stopCleanup)

	// ── Start Server ─────────────────────────────────────────
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           newRouter(routerDeps{cfg: cfg, log: log, db: db, svc: svc, metrics: metrics, limiter: limiter, gatherer: reg}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("storefront API server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
