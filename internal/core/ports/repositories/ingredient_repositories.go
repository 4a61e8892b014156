package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IngredientReader defines read operations for inventory data
type IngredientReader interface {
	// FindIngredientsByIDs returns the ingredients that exist, keyed by id.
	FindIngredientsByIDs(ctx context.Context, ingredientIDs []string) (map[string]domain.Ingredient, error)

	// ListIngredients returns every ingredient ordered by name.
	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
}

// IngredientWriter defines unlocked write operations for inventory data
type IngredientWriter interface {
	// SetIngredientStocks overwrites stock with absolute values computed from an earlier read.
	SetIngredientStocks(ctx context.Context, stocks map[string]decimal.Decimal, updatedBy string, at time.Time) error
}

// IngredientRepositoryFacade combines all inventory repository interfaces
type IngredientRepositoryFacade interface {
	IngredientReader
	IngredientWriter
}
