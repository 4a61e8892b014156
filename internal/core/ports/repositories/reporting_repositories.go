package repositories

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// ReportingRepository aggregates sale records for reconciliation.
type ReportingRepository interface {
	SummarizeSessionSales(ctx context.Context, sessionID string) (*domain.SessionSalesSummary, error)
}
