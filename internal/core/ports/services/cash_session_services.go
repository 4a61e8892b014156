package services

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// CashSessionWriterSvc defines write operations for cash sessions
type CashSessionWriterSvc interface {
	OpenSession(ctx context.Context, req dto.OpenSessionRequest, operator domain.Operator) (*domain.CashSession, error)
	CloseSession(ctx context.Context, sessionID string, actualCash decimal.Decimal, operator domain.Operator) (*domain.CashSession, error)
}

// CashSessionReaderSvc defines read operations for cash sessions
type CashSessionReaderSvc interface {
	GetSession(ctx context.Context, sessionID string) (*domain.CashSession, error)
	GetOpenSession(ctx context.Context, registerID string) (*domain.CashSession, error)
}

// CashSessionSvcFacade combines all cash session service interfaces
type CashSessionSvcFacade interface {
	CashSessionWriterSvc
	CashSessionReaderSvc
}
