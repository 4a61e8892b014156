package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a sale was paid.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentCard  PaymentMethod = "card"
	PaymentOther PaymentMethod = "other"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentOther:
		return true
	}
	return false
}

// SaleStatus is the void lifecycle state of a sale.
type SaleStatus string

const (
	SaleCompleted   SaleStatus = "completed"
	SalePendingVoid SaleStatus = "pending_void"
	SaleVoided      SaleStatus = "voided"
)

// CartItem is one line as entered at the register, before grouping.
type CartItem struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	IsRedeemed bool   `json:"isRedeemed"`
}

// SaleLine is a grouped line on the sale record.
type SaleLine struct {
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
	IsRedeemed bool            `json:"isRedeemed"`
}

// Sale is the immutable record of a checkout. Only the void fields change after creation.
type Sale struct {
	SaleID         string            `json:"saleID"`
	Timestamp      time.Time         `json:"timestamp"`
	SessionID      string            `json:"sessionID"`
	Total          decimal.Decimal   `json:"total"`
	CostOfGoods    decimal.Decimal   `json:"costOfGoods"`
	LineItems      []SaleLine        `json:"lineItems"`
	CustomerID     *string           `json:"customerID,omitempty"`
	StampsEarned   int64             `json:"stampsEarned"`
	StampsSpent    int64             `json:"stampsSpent"`
	PaymentMethod  PaymentMethod     `json:"paymentMethod"`
	AmountReceived *decimal.Decimal  `json:"amountReceived,omitempty"`
	Change         *decimal.Decimal  `json:"change,omitempty"`
	WeatherContext *WeatherSnapshot  `json:"weatherContext,omitempty"`
	Consumption    []IngredientUsage `json:"consumption"`
	Status         SaleStatus        `json:"status"`
	CreatedBy      string            `json:"createdBy"`

	VoidReason      *string    `json:"voidReason,omitempty"`
	VoidRequestedBy *string    `json:"voidRequestedBy,omitempty"`
	VoidRequestedAt *time.Time `json:"voidRequestedAt,omitempty"`
	VoidProcessedBy *string    `json:"voidProcessedBy,omitempty"`
	VoidProcessedAt *time.Time `json:"voidProcessedAt,omitempty"`
}

// SaleFilter narrows a sale listing.
type SaleFilter struct {
	Status    *SaleStatus
	SessionID *string
}

// SaleReceipt is a committed sale plus the inventory notices raised by it.
type SaleReceipt struct {
	Sale          Sale     `json:"sale"`
	LowStock      []string `json:"lowStock,omitempty"`
	StockWarnings []string `json:"stockWarnings,omitempty"` // ingredients driven below zero
	PriceMismatch bool     `json:"priceMismatch,omitempty"` // total differs from catalog prices
}

// VoidOutcome is an approved void and the restorations it had to skip.
type VoidOutcome struct {
	Sale               Sale     `json:"sale"`
	SkippedIngredients []string `json:"skippedIngredients,omitempty"`
	SkippedProducts    []string `json:"skippedProducts,omitempty"`
}
