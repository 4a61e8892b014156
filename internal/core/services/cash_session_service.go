package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

type cashSessionService struct {
	BaseService
	ledger   portsrepo.TxRunner
	sessions portsrepo.CashSessionReader
	scope    domain.SessionScope
}

// NewCashSessionService creates the cash session manager.
func NewCashSessionService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.CashSessionSvcFacade {
	cfg := newSettings(options)
	return &cashSessionService{
		BaseService: cfg.base,
		ledger:      repos.Ledger,
		sessions:    repos.SessionRepo,
		scope:       cfg.scope,
	}
}

var _ portssvc.CashSessionSvcFacade = (*cashSessionService)(nil)

// OpenSession starts a new drawer period. The open-session check runs inside
// the unit of work and the store rejects a second open session for the same
// scope, so two concurrent opens cannot both succeed.
func (s *cashSessionService) OpenSession(ctx context.Context, req dto.OpenSessionRequest, operator domain.Operator) (*domain.CashSession, error) {
	scopeKey, ok := s.scope.KeyFor(req.RegisterID)
	if !ok {
		s.LogWarn(ctx, "Session open rejected", slog.String("reason", apperrors.ErrRegisterRequired.Error()))
		return nil, apperrors.ErrRegisterRequired
	}

	session := domain.CashSession{
		SessionID:      s.newID(),
		ScopeKey:       scopeKey,
		OpenedBy:       operator.ID,
		OpenTime:       s.now(),
		InitialBalance: req.InitialBalance,
		ExpectedCash:   req.InitialBalance,
		SalesCash:      decimal.Zero,
		SalesCard:      decimal.Zero,
		SalesOther:     decimal.Zero,
		Status:         domain.SessionOpen,
	}

	err := s.ledger.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		existing, err := tx.LockOpenSession(ctx, scopeKey)
		switch {
		case err == nil:
			return fmt.Errorf("%w: session %s is still open", apperrors.ErrSessionAlreadyOpen, existing.SessionID)
		case !isNotFound(err):
			return err
		}
		if err := tx.InsertSession(ctx, session); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return apperrors.ErrSessionAlreadyOpen
			}
			return err
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to open session", slog.String("scope_key", scopeKey))
		return nil, err
	}

	s.Metrics.SessionEvent("opened")
	s.LogInfo(ctx, "Cash session opened",
		slog.String("session_id", session.SessionID),
		slog.String("scope_key", scopeKey),
		slog.String("initial_balance", session.InitialBalance.String()))
	s.publish(ctx, domain.EventSessionOpened, session.SessionID, operator.ID, session)
	return &session, nil
}

// CloseSession records the counted cash. A closed session is terminal.
func (s *cashSessionService) CloseSession(ctx context.Context, sessionID string, actualCash decimal.Decimal, operator domain.Operator) (*domain.CashSession, error) {
	var closed domain.CashSession
	err := s.ledger.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		session, err := tx.LockSession(ctx, sessionID)
		if err != nil {
			return mapNotFound(err, apperrors.ErrSessionNotFound)
		}
		if !session.IsOpen() {
			return fmt.Errorf("%w: session %s", apperrors.ErrSessionClosed, sessionID)
		}
		closed = *session
		closed.Close(actualCash, operator.ID, s.now())
		return tx.SaveSession(ctx, closed)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to close session", slog.String("session_id", sessionID))
		return nil, err
	}

	s.Metrics.SessionEvent("closed")
	s.LogInfo(ctx, "Cash session closed",
		slog.String("session_id", sessionID),
		slog.String("expected_cash", closed.ExpectedCash.String()),
		slog.String("difference", closed.Difference.String()))
	s.publish(ctx, domain.EventSessionClosed, sessionID, operator.ID, closed)
	return &closed, nil
}

func (s *cashSessionService) GetSession(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	session, err := s.sessions.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, mapNotFound(err, apperrors.ErrSessionNotFound)
	}
	return session, nil
}

func (s *cashSessionService) GetOpenSession(ctx context.Context, registerID string) (*domain.CashSession, error) {
	scopeKey, ok := s.scope.KeyFor(registerID)
	if !ok {
		return nil, apperrors.ErrRegisterRequired
	}
	session, err := s.sessions.FindOpenSession(ctx, scopeKey)
	if err != nil {
		return nil, mapNotFound(err, apperrors.ErrNoOpenSession)
	}
	return session, nil
}
