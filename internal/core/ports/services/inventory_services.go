package services

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InventorySvcFacade exposes stock levels and manual restocking.
type InventorySvcFacade interface {
	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
	RestockIngredient(ctx context.Context, ingredientID string, quantity decimal.Decimal, operator domain.Operator) (*domain.Ingredient, error)
}
