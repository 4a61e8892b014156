package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a row of the customers table.
type Customer struct {
	CustomerID     string          `db:"customer_id"`
	Name           string          `db:"name"`
	StampBalance   int64           `db:"stamp_balance"`
	TotalPurchases int64           `db:"total_purchases"`
	TotalSpent     decimal.Decimal `db:"total_spent"`
	LastVisit      *time.Time      `db:"last_visit"` // Nullable
	AuditFields
}
