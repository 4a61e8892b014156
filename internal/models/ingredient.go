package models

import "github.com/shopspring/decimal"

// Ingredient is a row of the ingredients table.
type Ingredient struct {
	IngredientID string          `db:"ingredient_id"`
	Name         string          `db:"name"`
	Unit         string          `db:"unit"`
	Stock        decimal.Decimal `db:"stock"`
	MinStock     decimal.Decimal `db:"min_stock"`
	UnitCost     decimal.Decimal `db:"unit_cost"`
	AuditFields
}
