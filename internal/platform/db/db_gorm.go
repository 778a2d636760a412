// Package db はシンボルテーブル用の GORM 接続を提供します（SQLite / PostgreSQL）。
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	symbolentity "crypto_dashboard/internal/feature/symbols/domain/entity"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config はデータベース接続設定です。
type Config struct {
	Driver         string        `envconfig:"DB_DRIVER" default:"sqlite"`
	DSN            string        `envconfig:"DB_DSN"` // postgres 用
	SQLitePath     string        `envconfig:"SQLITE_PATH" default:"data/dashboard.db"`
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"60s"`
}

// LoadConfig reads the database settings from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("db config: %w", err)
	}
	return cfg, nil
}

// Opener は DSN から GORM 接続を開く関数です（テストで差し替え可能）。
type Opener func(dsn string) (*gorm.DB, error)

// retryInterval は接続リトライの間隔です。
var retryInterval = time.Second

var gormConfig = &gorm.Config{
	Logger: gormlogger.Default.LogMode(gormlogger.Warn),
}

// OpenSQLite opens (and creates the directory of) a SQLite file.
func OpenSQLite(path string) (*gorm.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	return gorm.Open(sqlite.Open(path), gormConfig)
}

// OpenPostgres opens a PostgreSQL database through the pgx stdlib driver.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	pcfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	sqlDB := stdlib.OpenDB(*pcfg)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// BuildDSN returns the DSN and opener for the configured driver.
func BuildDSN(cfg Config) (string, Opener, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		return cfg.SQLitePath, OpenSQLite, nil
	case DriverPostgres:
		if cfg.DSN == "" {
			return "", nil, fmt.Errorf("DB_DSN is required for driver %q", cfg.Driver)
		}
		return cfg.DSN, OpenPostgres, nil
	default:
		return "", nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// ConnectWithRetry は opener を timeout まで繰り返し呼び出します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		zap.S().Warnw("db connect failed, retrying", "error", err, "wait", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open connects according to cfg.
func Open(cfg Config) (*gorm.DB, error) {
	dsn, opener, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(dsn, cfg.ConnectTimeout, opener)
	if err != nil {
		return nil, err
	}
	zap.S().Infow("database connected", "driver", cfg.Driver)
	return db, nil
}

// Migrate creates or updates the symbol table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&symbolentity.Symbol{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
