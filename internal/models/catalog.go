package models

import "github.com/shopspring/decimal"

// CatalogItem is a row of the catalog_items table joined with its recipe.
type CatalogItem struct {
	ProductID          string          `db:"product_id"`
	Name               string          `db:"name"`
	Price              decimal.Decimal `db:"price"`
	PurchaseCost       decimal.Decimal `db:"purchase_cost"`
	GrantsLoyaltyStamp bool            `db:"grants_loyalty_stamp"`
	Recipe             []RecipeLine    `db:"recipe"` // aggregated as jsonb
}

// RecipeLine is a row of the recipe_lines table.
type RecipeLine struct {
	IngredientID string          `json:"ingredientID"`
	QtyRequired  decimal.Decimal `json:"qtyRequired"`
}
