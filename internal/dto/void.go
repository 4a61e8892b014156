package dto

import "github.com/SscSPs/pos_ledger/internal/core/domain"

// RequestVoidRequest is the body of POST /sales/{saleId}/void-request.
type RequestVoidRequest struct {
	Reason string `json:"reason"`
}

// ApproveVoidRequest is the optional body of POST /sales/{saleId}/void.
type ApproveVoidRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// VoidResponse is returned after an approved void.
type VoidResponse struct {
	Sale               SaleResponse `json:"sale"`
	SkippedIngredients []string     `json:"skippedIngredients,omitempty"`
	SkippedProducts    []string     `json:"skippedProducts,omitempty"`
}

// ToVoidResponse converts a void outcome to its response DTO.
func ToVoidResponse(o *domain.VoidOutcome) VoidResponse {
	return VoidResponse{
		Sale:               ToSaleResponse(&o.Sale),
		SkippedIngredients: o.SkippedIngredients,
		SkippedProducts:    o.SkippedProducts,
	}
}
