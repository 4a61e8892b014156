package dto

import (
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RestockRequest is the body of POST /ingredients/{ingredientId}/restock.
type RestockRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"gt=0"`
}

// IngredientResponse defines the data returned for an ingredient.
type IngredientResponse struct {
	IngredientID string          `json:"ingredientID"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Stock        decimal.Decimal `json:"stock"`
	MinStock     decimal.Decimal `json:"minStock"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	IsLow        bool            `json:"isLow"`
}

// ToIngredientResponse converts a domain.Ingredient to IngredientResponse DTO.
func ToIngredientResponse(i *domain.Ingredient) IngredientResponse {
	return IngredientResponse{
		IngredientID: i.IngredientID,
		Name:         i.Name,
		Unit:         i.Unit,
		Stock:        i.Stock,
		MinStock:     i.MinStock,
		UnitCost:     i.UnitCost,
		IsLow:        i.IsLow(),
	}
}

// ToIngredientResponses converts a slice of domain.Ingredient to []IngredientResponse.
func ToIngredientResponses(items []domain.Ingredient) []IngredientResponse {
	responses := make([]IngredientResponse, len(items))
	for i := range items {
		responses[i] = ToIngredientResponse(&items[i])
	}
	return responses
}
