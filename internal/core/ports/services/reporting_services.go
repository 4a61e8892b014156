package services

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// ReportingService defines reconciliation reports
type ReportingService interface {
	// GetSessionReconciliation compares a session's running totals with the sales recorded against it.
	GetSessionReconciliation(ctx context.Context, sessionID string) (*domain.SessionReconciliation, error)
}
