// Package usecase implements the business logic for the symbol mapping table.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"crypto_dashboard/internal/feature/candles/domain"
	"crypto_dashboard/internal/feature/symbols/domain/entity"
)

// SymbolRepository abstracts the persistence layer for the symbol mapping table.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	ListActiveTickers(ctx context.Context) ([]string, error)
	FindByCode(ctx context.Context, code string) (entity.Symbol, error)
	UpsertAll(ctx context.Context, symbols []entity.Symbol) error
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns all active symbols ordered by sort key.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// ListActiveTickers returns the exchange tickers of all active symbols.
func (u *SymbolUsecase) ListActiveTickers(ctx context.Context) ([]string, error) {
	return u.repo.ListActiveTickers(ctx)
}

// Resolve looks a symbol up by exchange ticker or by any provider code.
func (u *SymbolUsecase) Resolve(ctx context.Context, code string) (entity.Symbol, error) {
	if strings.TrimSpace(code) == "" {
		return entity.Symbol{}, fmt.Errorf("empty ticker: %w", domain.ErrSymbolNotFound)
	}
	return u.repo.FindByCode(ctx, code)
}

// Seed upserts the given mapping rows.
func (u *SymbolUsecase) Seed(ctx context.Context, symbols []entity.Symbol) error {
	if err := u.repo.UpsertAll(ctx, symbols); err != nil {
		return fmt.Errorf("seed symbols: %w", err)
	}
	return nil
}
