package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"crypto_dashboard/internal/app/di"
	"crypto_dashboard/internal/platform/config"
	platformdb "crypto_dashboard/internal/platform/db"
	"crypto_dashboard/internal/platform/logger"
	infraredis "crypto_dashboard/internal/platform/redis"
)

// warm fetches every active ticker's dashboard series once, filling the Redis cache.
func main() {
	refresh := flag.Bool("refresh", false, "drop cached series before fetching")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	flush, err := logger.Init(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer flush()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	gdb, err := platformdb.Open(cfg.DB)
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := infraredis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal(err)
	}
	if rdb == nil {
		zap.S().Warnw("REDIS_HOST is not set; warming has no lasting effect")
	} else {
		defer func() { _ = rdb.Close() }()
	}

	uc := di.NewUsecases(ctx, cfg, gdb, rdb)
	if *refresh {
		if err := uc.InvalidateCache(ctx); err != nil {
			zap.S().Errorw("invalidate failed", "error", err)
			flush()
			log.Fatal(err)
		}
	}
	if err := uc.WarmCache(ctx); err != nil {
		zap.S().Errorw("warm failed", "error", err)
		flush()
		log.Fatal(err)
	}
	zap.S().Infow("warm ok")
}
