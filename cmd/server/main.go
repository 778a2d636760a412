package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"crypto_dashboard/internal/app/di"
	"crypto_dashboard/internal/app/router"
	"crypto_dashboard/internal/platform/config"
	platformdb "crypto_dashboard/internal/platform/db"
	platformhandler "crypto_dashboard/internal/platform/http/handler"
	"crypto_dashboard/internal/platform/logger"
	infraredis "crypto_dashboard/internal/platform/redis"
	"crypto_dashboard/internal/platform/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	flush, err := logger.Init(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer flush()

	if err := run(cfg); err != nil {
		zap.S().Errorw("server exited with error", "error", err)
		flush()
		log.Fatal(err)
	}
}

func run(cfg *config.AppConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := platformdb.Open(cfg.DB)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
		zap.S().Warnw("Redis unavailable. Running without cache.", "error", err)
	} else if tmp != nil {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				zap.S().Errorw("failed to close Redis client", "error", err)
			}
		}()
	}

	uc := di.NewUsecases(ctx, cfg, gdb, rdb)
	n, err := di.SeedSymbols(ctx, gdb, uc.Symbols, cfg.SymbolsFile)
	if err != nil {
		return err
	}
	zap.S().Infow("symbols ready", "count", n)

	checks := map[string]platformhandler.CheckFunc{"database": sqlDB.PingContext}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.NewRouter(di.NewHandlers(cfg, uc), platformhandler.NewHealthHandler(checks, 2*time.Second))

	// キャッシュのウォームアップ（CACHE_WARM_CRON が空なら無効）
	sched := scheduler.New(ctx)
	if cfg.CacheWarmCron != "" {
		if err := sched.Register("cache-warm", cfg.CacheWarmCron, 10*time.Minute, uc.WarmCache); err != nil {
			return err
		}
		sched.Start()
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("http server listening", "addr", cfg.HTTPAddr, "source", cfg.DataSource, "env", cfg.AppEnv)
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

	zap.S().Infow("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if cfg.CacheWarmCron != "" {
		sched.Stop(shutdownCtx)
	}
	return srv.Shutdown(shutdownCtx)
}
