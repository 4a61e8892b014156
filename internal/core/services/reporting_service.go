package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
)

// reportingService implements portssvc.ReportingService.
type reportingService struct {
	BaseService
	sessions  portsrepo.CashSessionReader
	reporting portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.ReportingService {
	cfg := newSettings(options)
	return &reportingService{
		BaseService: cfg.base,
		sessions:    repos.SessionRepo,
		reporting:   repos.ReportingRepo,
	}
}

// GetSessionReconciliation sums every sale recorded against the session and
// compares it with the session's running totals. Voided sales stay in both
// sides: voids do not touch session totals, so their cash is reported apart.
func (s *reportingService) GetSessionReconciliation(ctx context.Context, sessionID string) (*domain.SessionReconciliation, error) {
	session, err := s.sessions.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, mapNotFound(err, apperrors.ErrSessionNotFound)
	}
	summary, err := s.reporting.SummarizeSessionSales(ctx, sessionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize session sales")
		return nil, fmt.Errorf("failed to summarize session %s: %w", sessionID, err)
	}

	drift := domain.PaymentTotals{
		Cash:  session.SalesCash.Sub(summary.Recorded.Cash),
		Card:  session.SalesCard.Sub(summary.Recorded.Card),
		Other: session.SalesOther.Sub(summary.Recorded.Other),
	}
	return &domain.SessionReconciliation{
		Session:    *session,
		Sales:      *summary,
		Drift:      drift,
		VoidedCash: summary.Voided.Cash,
		IsBalanced: drift.Cash.IsZero() && drift.Card.IsZero() && drift.Other.IsZero(),
	}, nil
}
