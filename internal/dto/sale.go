package dto

import (
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CartItemRequest is one line of a checkout.
type CartItemRequest struct {
	Name       string `json:"name" binding:"required"`
	Quantity   int    `json:"quantity" binding:"max=10000"`
	IsRedeemed bool   `json:"isRedeemed"`
}

// CommitSaleRequest is the body of POST /sales.
// Cart shape and amounts are checked by the ledger so that each failure names its precondition.
type CommitSaleRequest struct {
	Items          []CartItemRequest    `json:"items" binding:"dive"`
	Total          decimal.Decimal      `json:"total" binding:"gte=0"`
	CustomerID     *string              `json:"customerID,omitempty"`
	PaymentMethod  domain.PaymentMethod `json:"paymentMethod" binding:"required"`
	AmountReceived *decimal.Decimal     `json:"amountReceived,omitempty" binding:"omitempty,gte=0"`
	ChangeGiven    *decimal.Decimal     `json:"changeGiven,omitempty" binding:"omitempty,gte=0"`
	RegisterID     string               `json:"registerID,omitempty"`
}

// ToCartItems converts request lines to domain cart items.
func (r CommitSaleRequest) ToCartItems() []domain.CartItem {
	items := make([]domain.CartItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = domain.CartItem{Name: it.Name, Quantity: it.Quantity, IsRedeemed: it.IsRedeemed}
	}
	return items
}

// SaleLineResponse is a grouped sale line.
type SaleLineResponse struct {
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
	IsRedeemed bool            `json:"isRedeemed"`
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SaleID          string                   `json:"saleID"`
	Timestamp       time.Time                `json:"timestamp"`
	SessionID       string                   `json:"sessionID"`
	Total           decimal.Decimal          `json:"total"`
	CostOfGoods     decimal.Decimal          `json:"costOfGoods"`
	LineItems       []SaleLineResponse       `json:"lineItems"`
	CustomerID      *string                  `json:"customerID,omitempty"`
	StampsEarned    int64                    `json:"stampsEarned"`
	StampsSpent     int64                    `json:"stampsSpent"`
	PaymentMethod   domain.PaymentMethod     `json:"paymentMethod"`
	AmountReceived  *decimal.Decimal         `json:"amountReceived,omitempty"`
	Change          *decimal.Decimal         `json:"change,omitempty"`
	WeatherContext  *domain.WeatherSnapshot  `json:"weatherContext,omitempty"`
	Consumption     []domain.IngredientUsage `json:"consumption"`
	Status          domain.SaleStatus        `json:"status"`
	CreatedBy       string                   `json:"createdBy"`
	VoidReason      *string                  `json:"voidReason,omitempty"`
	VoidRequestedBy *string                  `json:"voidRequestedBy,omitempty"`
	VoidProcessedBy *string                  `json:"voidProcessedBy,omitempty"`
}

// CommitSaleResponse is returned from POST /sales.
type CommitSaleResponse struct {
	Sale          SaleResponse `json:"sale"`
	LowStock      []string     `json:"lowStock,omitempty"`
	StockWarnings []string     `json:"stockWarnings,omitempty"`
	PriceMismatch bool         `json:"priceMismatch,omitempty"`
}

// ListSalesParams defines the query parameters for listing sales.
type ListSalesParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status" binding:"omitempty,oneof=completed pending_void voided"`
	SessionID *string `form:"sessionID"`
}

// ListSalesResponse wraps a page of sales.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	lines := make([]SaleLineResponse, len(s.LineItems))
	for i, l := range s.LineItems {
		lines[i] = SaleLineResponse{Name: l.Name, UnitPrice: l.UnitPrice, Quantity: l.Quantity, IsRedeemed: l.IsRedeemed}
	}
	return SaleResponse{
		SaleID:          s.SaleID,
		Timestamp:       s.Timestamp,
		SessionID:       s.SessionID,
		Total:           s.Total,
		CostOfGoods:     s.CostOfGoods,
		LineItems:       lines,
		CustomerID:      s.CustomerID,
		StampsEarned:    s.StampsEarned,
		StampsSpent:     s.StampsSpent,
		PaymentMethod:   s.PaymentMethod,
		AmountReceived:  s.AmountReceived,
		Change:          s.Change,
		WeatherContext:  s.WeatherContext,
		Consumption:     s.Consumption,
		Status:          s.Status,
		CreatedBy:       s.CreatedBy,
		VoidReason:      s.VoidReason,
		VoidRequestedBy: s.VoidRequestedBy,
		VoidProcessedBy: s.VoidProcessedBy,
	}
}

// ToSaleResponses converts a slice of domain.Sale to []SaleResponse.
func ToSaleResponses(sales []domain.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}
	return responses
}

// ToCommitSaleResponse converts a receipt to the POST /sales response.
func ToCommitSaleResponse(r *domain.SaleReceipt) CommitSaleResponse {
	return CommitSaleResponse{
		Sale:          ToSaleResponse(&r.Sale),
		LowStock:      r.LowStock,
		StockWarnings: r.StockWarnings,
		PriceMismatch: r.PriceMismatch,
	}
}
