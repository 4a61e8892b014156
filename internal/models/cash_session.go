package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashSession is a row of the cash_sessions table.
type CashSession struct {
	SessionID      string           `db:"session_id"`
	ScopeKey       string           `db:"scope_key"`
	OpenedBy       string           `db:"opened_by"`
	OpenTime       time.Time        `db:"open_time"`
	CloseTime      *time.Time       `db:"close_time"` // Nullable
	ClosedBy       *string          `db:"closed_by"`  // Nullable
	InitialBalance decimal.Decimal  `db:"initial_balance"`
	ExpectedCash   decimal.Decimal  `db:"expected_cash"`
	SalesCash      decimal.Decimal  `db:"sales_cash"`
	SalesCard      decimal.Decimal  `db:"sales_card"`
	SalesOther     decimal.Decimal  `db:"sales_other"`
	ActualCash     *decimal.Decimal `db:"actual_cash"` // Nullable
	Difference     *decimal.Decimal `db:"difference"`  // Nullable
	Status         string           `db:"status"`
}
