package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type inventoryService struct {
	BaseService
	ledger      portsrepo.TxRunner
	ingredients portsrepo.IngredientReader
}

// NewInventoryService creates the inventory service.
func NewInventoryService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.InventorySvcFacade {
	cfg := newSettings(options)
	return &inventoryService{
		BaseService: cfg.base,
		ledger:      repos.Ledger,
		ingredients: repos.IngredientRepo,
	}
}

func (s *inventoryService) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	ingredients, err := s.ingredients.ListIngredients(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ingredients")
		return nil, err
	}
	return ingredients, nil
}

// RestockIngredient adds quantity to the stored stock under a row lock.
func (s *inventoryService) RestockIngredient(ctx context.Context, ingredientID string, quantity decimal.Decimal, operator domain.Operator) (*domain.Ingredient, error) {
	if !quantity.IsPositive() {
		return nil, apperrors.ErrInvalidQuantity
	}

	var restocked domain.Ingredient
	err := s.ledger.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		locked, err := tx.LockIngredients(ctx, []string{ingredientID})
		if err != nil {
			return err
		}
		ing, ok := locked[ingredientID]
		if !ok {
			return apperrors.ErrIngredientNotFound
		}
		now := s.now()
		if err := tx.AdjustIngredientStocks(ctx, map[string]decimal.Decimal{ingredientID: quantity}, operator.ID, now); err != nil {
			return err
		}
		ing.Stock = ing.Stock.Add(quantity)
		ing.LastUpdatedAt = now
		ing.LastUpdatedBy = operator.ID
		restocked = ing
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Restock failed", slog.String("ingredient_id", ingredientID))
		return nil, err
	}

	s.LogInfo(ctx, "Ingredient restocked",
		slog.String("ingredient_id", ingredientID),
		slog.String("quantity", quantity.String()),
		slog.String("stock", restocked.Stock.String()))
	s.publish(ctx, domain.EventIngredientRestock, ingredientID, operator.ID, domain.IngredientUsage{
		IngredientID: ingredientID,
		Quantity:     quantity,
	})
	return &restocked, nil
}
