package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"crypto_dashboard/internal/feature/candles/domain"
	"crypto_dashboard/internal/feature/symbols/domain/entity"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	// :memory: は接続ごとに別DBになるため接続を1本に固定する
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&entity.Symbol{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func seedDefaults(t *testing.T, repo *symbolGorm) {
	t.Helper()

	err := repo.UpsertAll(context.Background(), []entity.Symbol{
		{Ticker: "ETHUSDT", Name: "Ethereum", YahooCode: "ETH-USD", TwelveDataCode: "ETH/USD", FeedCode: "ETHUSDT", IsActive: true, SortKey: 2},
		{Ticker: "BTCUSDT", Name: "Bitcoin", YahooCode: "BTC-USD", TwelveDataCode: "BTC/USD", FeedCode: "BTCUSDT", IsActive: true, SortKey: 1},
		{Ticker: "FTMUSDT", Name: "Fantom", YahooCode: "FTM-USD", TwelveDataCode: "FTM/USD", FeedCode: "FTMUSDT", IsActive: false, SortKey: 3},
	})
	require.NoError(t, err, "failed to seed symbols")
}

func TestNewSymbolRepository(t *testing.T) {
	t.Parallel()

	repo := NewSymbolRepository(setupTestDB(t))

	assert.NotNil(t, repo, "repository should not be nil")
	assert.NotNil(t, repo.db, "database connection should not be nil")
}

func TestSymbolGorm_ListActive(t *testing.T) {
	t.Parallel()

	repo := NewSymbolRepository(setupTestDB(t))
	seedDefaults(t, repo)

	symbols, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, symbols, 2, "inactive symbols must be excluded")
	assert.Equal(t, "BTCUSDT", symbols[0].Ticker, "ordered by sort_key")
	assert.Equal(t, "ETHUSDT", symbols[1].Ticker)
}

func TestSymbolGorm_ListActiveTickers(t *testing.T) {
	t.Parallel()

	repo := NewSymbolRepository(setupTestDB(t))
	seedDefaults(t, repo)

	tickers, err := repo.ListActiveTickers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, tickers)
}

func TestSymbolGorm_FindByCode(t *testing.T) {
	t.Parallel()

	repo := NewSymbolRepository(setupTestDB(t))
	seedDefaults(t, repo)

	tests := []struct {
		name    string
		code    string
		want    string
		wantErr error
	}{
		{name: "exchange ticker", code: "BTCUSDT", want: "BTCUSDT"},
		{name: "lower case ticker", code: " ethusdt ", want: "ETHUSDT"},
		{name: "yahoo code", code: "BTC-USD", want: "BTCUSDT"},
		{name: "twelvedata code", code: "ETH/USD", want: "ETHUSDT"},
		{name: "inactive symbols are still resolvable", code: "FTM-USD", want: "FTMUSDT"},
		{name: "unknown", code: "DOGE-USD", wantErr: domain.ErrSymbolNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := repo.FindByCode(context.Background(), tt.code)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Ticker)
		})
	}
}

func TestSymbolGorm_UpsertAll_UpdatesExisting(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSymbolRepository(db)
	seedDefaults(t, repo)

	err := repo.UpsertAll(context.Background(), []entity.Symbol{
		{Ticker: "BTCUSDT", Name: "Bitcoin", YahooCode: "BTC-USD", TwelveDataCode: "BTC/USD", FeedCode: "btc", IsActive: false, SortKey: 9},
	})
	require.NoError(t, err)

	var count int64
	db.Model(&entity.Symbol{}).Count(&count)
	assert.Equal(t, int64(3), count, "upsert must not duplicate rows")

	s, err := repo.FindByCode(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, "btc", s.FeedCode)
	assert.False(t, s.IsActive)
	assert.Equal(t, 9, s.SortKey)
}

func TestSymbolGorm_UpsertAll_Empty(t *testing.T) {
	t.Parallel()

	repo := NewSymbolRepository(setupTestDB(t))
	assert.NoError(t, repo.UpsertAll(context.Background(), nil))
}
