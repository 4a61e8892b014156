package dto

import (
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SessionReconciliationResponse represents the reconciliation report of one cash session
type SessionReconciliationResponse struct {
	Session     SessionResponse      `json:"session"`
	SaleCount   int                  `json:"saleCount"`
	VoidedCount int                  `json:"voidedCount"`
	Recorded    domain.PaymentTotals `json:"recorded"`
	Voided      domain.PaymentTotals `json:"voided"`
	Drift       domain.PaymentTotals `json:"drift"`
	VoidedCash  decimal.Decimal      `json:"voidedCash"`
	IsBalanced  bool                 `json:"isBalanced"`
}

// ToSessionReconciliationResponse converts the domain report to its response DTO
func ToSessionReconciliationResponse(r *domain.SessionReconciliation) SessionReconciliationResponse {
	return SessionReconciliationResponse{
		Session:     ToSessionResponse(&r.Session),
		SaleCount:   r.Sales.SaleCount,
		VoidedCount: r.Sales.VoidedCount,
		Recorded:    r.Sales.Recorded,
		Voided:      r.Sales.Voided,
		Drift:       r.Drift,
		VoidedCash:  r.VoidedCash,
		IsBalanced:  r.IsBalanced,
	}
}
