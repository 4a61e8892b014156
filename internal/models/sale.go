package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a row of the sales table. Line items, consumption and the
// weather annotation are stored as jsonb.
type Sale struct {
	SaleID          string            `db:"sale_id"`
	Timestamp       time.Time         `db:"sale_timestamp"`
	SessionID       string            `db:"session_id"`
	Total           decimal.Decimal   `db:"total"`
	CostOfGoods     decimal.Decimal   `db:"cost_of_goods"`
	LineItems       []SaleLine        `db:"line_items"`
	CustomerID      *string           `db:"customer_id"` // Nullable
	StampsEarned    int64             `db:"stamps_earned"`
	StampsSpent     int64             `db:"stamps_spent"`
	PaymentMethod   string            `db:"payment_method"`
	AmountReceived  *decimal.Decimal  `db:"amount_received"`
	Change          *decimal.Decimal  `db:"change_given"`
	WeatherContext  *WeatherSnapshot  `db:"weather_context"`
	Consumption     []IngredientUsage `db:"consumption"`
	Status          string            `db:"status"`
	CreatedBy       string            `db:"created_by"`
	VoidReason      *string           `db:"void_reason"`
	VoidRequestedBy *string           `db:"void_requested_by"`
	VoidRequestedAt *time.Time        `db:"void_requested_at"`
	VoidProcessedBy *string           `db:"void_processed_by"`
	VoidProcessedAt *time.Time        `db:"void_processed_at"`
}

// SaleLine is one element of sales.line_items.
type SaleLine struct {
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
	IsRedeemed bool            `json:"isRedeemed"`
}

// IngredientUsage is one element of sales.consumption.
type IngredientUsage struct {
	IngredientID string          `json:"ingredientID"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// WeatherSnapshot is the value of sales.weather_context.
type WeatherSnapshot struct {
	Condition    string    `json:"condition"`
	WeatherCode  int       `json:"weatherCode"`
	TemperatureC float64   `json:"temperatureC"`
	ObservedAt   time.Time `json:"observedAt"`
}
