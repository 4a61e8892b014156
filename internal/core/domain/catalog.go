package domain

import "github.com/shopspring/decimal"

// RecipeLine is the quantity of one ingredient needed for a single unit of a product.
type RecipeLine struct {
	IngredientID string          `json:"ingredientID"`
	QtyRequired  decimal.Decimal `json:"qtyRequired"`
}

// CatalogItem is a sellable product. The ledger only reads it.
type CatalogItem struct {
	ProductID          string          `json:"productID"`
	Name               string          `json:"name"`
	Price              decimal.Decimal `json:"price"`
	Recipe             []RecipeLine    `json:"recipe"`
	PurchaseCost       decimal.Decimal `json:"purchaseCost"` // used when Recipe is empty
	GrantsLoyaltyStamp bool            `json:"grantsLoyaltyStamp"`
}

// IsPurchased reports whether the item is bought in ready-made rather than prepared.
func (c CatalogItem) IsPurchased() bool {
	return len(c.Recipe) == 0
}
