// Package adapters はsymbolsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crypto_dashboard/internal/feature/candles/domain"
	"crypto_dashboard/internal/feature/symbols/domain/entity"
	"crypto_dashboard/internal/feature/symbols/usecase"
)

// symbolGorm はSymbolRepositoryインターフェースのGORM実装です（SQLite / PostgreSQL）。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// ListActive はsort_key順にすべてのアクティブな銘柄を返します。
func (r *symbolGorm) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// ListActiveTickers はsort_key順にアクティブな銘柄のティッカーのみを返します。
func (r *symbolGorm) ListActiveTickers(ctx context.Context) ([]string, error) {
	var tickers []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Pluck("ticker", &tickers).Error; err != nil {
		return nil, err
	}
	return tickers, nil
}

// FindByCode はティッカーまたは各データソースのコードに一致する銘柄を返します。
// 一致しない場合は domain.ErrSymbolNotFound を返します。
func (r *symbolGorm) FindByCode(ctx context.Context, code string) (entity.Symbol, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	var s entity.Symbol
	err := r.db.WithContext(ctx).
		Where("ticker = ? OR yahoo_code = ? OR twelve_data_code = ? OR feed_code = ?", code, code, code, code).
		Order("sort_key ASC").
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Symbol{}, domain.ErrSymbolNotFound
	}
	if err != nil {
		return entity.Symbol{}, err
	}
	return s, nil
}

// UpsertAll はティッカーをキーに銘柄を一括で挿入（または更新）します。
func (r *symbolGorm) UpsertAll(ctx context.Context, symbols []entity.Symbol) error {
	if len(symbols) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "yahoo_code", "twelve_data_code", "feed_code", "is_active", "sort_key", "updated_at"}),
	}).Create(&symbols).Error
}
