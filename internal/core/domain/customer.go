package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StampsPerReward is the number of stamps a redeemed item costs.
const StampsPerReward = 10

// MaxLineQuantity is the largest quantity a single cart line may carry.
const MaxLineQuantity = 10000

// Customer is a loyalty account.
type Customer struct {
	CustomerID     string          `json:"customerID"`
	Name           string          `json:"name"`
	StampBalance   int64           `json:"stampBalance"`
	TotalPurchases int64           `json:"totalPurchases"`
	TotalSpent     decimal.Decimal `json:"totalSpent"`
	LastVisit      *time.Time      `json:"lastVisit,omitempty"`
	AuditFields
}
