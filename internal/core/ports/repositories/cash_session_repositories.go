package repositories

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// CashSessionReader defines read operations for cash sessions
type CashSessionReader interface {
	FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error)

	// FindOpenSession returns apperrors.ErrNotFound when no session is open under scopeKey.
	FindOpenSession(ctx context.Context, scopeKey string) (*domain.CashSession, error)
}

// CashSessionWriter defines unlocked write operations for cash sessions
type CashSessionWriter interface {
	SaveSession(ctx context.Context, session domain.CashSession) error
}

// CashSessionRepositoryFacade combines all cash session repository interfaces
type CashSessionRepositoryFacade interface {
	CashSessionReader
	CashSessionWriter
}
