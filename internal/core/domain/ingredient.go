package domain

import "github.com/shopspring/decimal"

// Ingredient is a stocked raw material consumed by recipes.
type Ingredient struct {
	IngredientID string          `json:"ingredientID"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"` // e.g. ml, g, unit
	Stock        decimal.Decimal `json:"stock"`
	MinStock     decimal.Decimal `json:"minStock"`
	UnitCost     decimal.Decimal `json:"unitCost"` // cost of one unit of Unit
	AuditFields
}

// IsLow reports whether stock is at or below the configured minimum.
func (i Ingredient) IsLow() bool {
	return i.Stock.LessThanOrEqual(i.MinStock)
}

// IngredientUsage is a quantity of a single ingredient, either consumed or restored.
type IngredientUsage struct {
	IngredientID string          `json:"ingredientID"`
	Quantity     decimal.Decimal `json:"quantity"`
}
