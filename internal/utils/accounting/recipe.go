package accounting

import (
	"fmt"
	"sort"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecipeUsage is what one unit of a product consumes.
type RecipeUsage struct {
	Ingredients map[string]decimal.Decimal
	UnitCost    decimal.Decimal
}

// ResolveRecipe maps a catalog item to its per-unit ingredient quantities and cost.
// Recipe-less items cost their purchase cost. Recipe lines whose ingredient is
// absent from ingredients add quantity but no cost.
func ResolveRecipe(item domain.CatalogItem, ingredients map[string]domain.Ingredient) RecipeUsage {
	usage := RecipeUsage{Ingredients: make(map[string]decimal.Decimal, len(item.Recipe))}
	if item.IsPurchased() {
		usage.UnitCost = item.PurchaseCost
		return usage
	}
	for _, line := range item.Recipe {
		usage.Ingredients[line.IngredientID] = usage.Ingredients[line.IngredientID].Add(line.QtyRequired)
		if ing, ok := ingredients[line.IngredientID]; ok {
			usage.UnitCost = usage.UnitCost.Add(ing.UnitCost.Mul(line.QtyRequired))
		}
	}
	return usage
}

// RequiredIngredients sums, by ingredient id, the quantities a cart consumes.
// Redeemed units consume ingredients like paid ones.
func RequiredIngredients(cart []domain.CartItem, catalog map[string]domain.CatalogItem) (map[string]decimal.Decimal, error) {
	required := make(map[string]decimal.Decimal)
	for _, item := range cart {
		product, ok := catalog[item.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownProduct, item.Name)
		}
		qty := decimal.NewFromInt(int64(item.Quantity))
		for _, line := range product.Recipe {
			required[line.IngredientID] = required[line.IngredientID].Add(line.QtyRequired.Mul(qty))
		}
	}
	return required, nil
}

// IngredientIDs returns the keys of a quantity map in a stable order.
func IngredientIDs(quantities map[string]decimal.Decimal) []string {
	ids := make([]string, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ToUsage flattens a quantity map into a sorted usage list.
func ToUsage(quantities map[string]decimal.Decimal) []domain.IngredientUsage {
	usage := make([]domain.IngredientUsage, 0, len(quantities))
	for _, id := range IngredientIDs(quantities) {
		usage = append(usage, domain.IngredientUsage{IngredientID: id, Quantity: quantities[id]})
	}
	return usage
}

// CartProductNames returns the distinct product names in a cart.
func CartProductNames(cart []domain.CartItem) []string {
	seen := make(map[string]struct{}, len(cart))
	names := make([]string, 0, len(cart))
	for _, item := range cart {
		if _, ok := seen[item.Name]; ok {
			continue
		}
		seen[item.Name] = struct{}{}
		names = append(names, item.Name)
	}
	return names
}
