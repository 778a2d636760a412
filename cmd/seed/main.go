package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"crypto_dashboard/internal/app/di"
	symboladapters "crypto_dashboard/internal/feature/symbols/adapters"
	symbolusecase "crypto_dashboard/internal/feature/symbols/usecase"
	"crypto_dashboard/internal/platform/config"
	platformdb "crypto_dashboard/internal/platform/db"
	"crypto_dashboard/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	path := flag.String("file", cfg.SymbolsFile, "symbols YAML (embedded default when empty)")
	flag.Parse()

	flush, err := logger.Init(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer flush()

	gdb, err := platformdb.Open(cfg.DB)
	if err != nil {
		log.Fatal(err)
	}
	uc := symbolusecase.NewSymbolUsecase(symboladapters.NewSymbolRepository(gdb))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := di.SeedSymbols(ctx, gdb, uc, *path)
	if err != nil {
		zap.S().Errorw("seed failed", "error", err)
		flush()
		log.Fatal(err)
	}
	zap.S().Infow("seed ok", "symbols", n, "driver", cfg.DB.Driver)
}
