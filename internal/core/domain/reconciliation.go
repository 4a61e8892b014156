package domain

import "github.com/shopspring/decimal"

// PaymentTotals is a per payment method breakdown.
type PaymentTotals struct {
	Cash  decimal.Decimal `json:"cash"`
	Card  decimal.Decimal `json:"card"`
	Other decimal.Decimal `json:"other"`
}

// Add accumulates amount into the bucket for method.
func (t *PaymentTotals) Add(method PaymentMethod, amount decimal.Decimal) {
	switch method {
	case PaymentCash:
		t.Cash = t.Cash.Add(amount)
	case PaymentCard:
		t.Card = t.Card.Add(amount)
	default:
		t.Other = t.Other.Add(amount)
	}
}

// SessionSalesSummary aggregates the sale records written against one session.
type SessionSalesSummary struct {
	SaleCount   int           `json:"saleCount"`
	VoidedCount int           `json:"voidedCount"`
	Recorded    PaymentTotals `json:"recorded"` // every sale, voided included
	Voided      PaymentTotals `json:"voided"`
}

// SessionReconciliation compares a session's running totals with its sale records.
type SessionReconciliation struct {
	Session    CashSession         `json:"session"`
	Sales      SessionSalesSummary `json:"sales"`
	Drift      PaymentTotals       `json:"drift"`      // session totals minus recorded sales
	VoidedCash decimal.Decimal     `json:"voidedCash"` // cash still counted in expectedCash
	IsBalanced bool                `json:"isBalanced"`
}
