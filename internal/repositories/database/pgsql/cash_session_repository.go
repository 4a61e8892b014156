package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/models"
	"github.com/SscSPs/pos_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionColumns = `session_id, scope_key, opened_by, open_time, close_time, closed_by,
	initial_balance, expected_cash, sales_cash, sales_card, sales_other,
	actual_cash, difference, status`

type PgxCashSessionRepository struct {
	BaseRepository
}

// newPgxCashSessionRepository creates a new repository for cash sessions.
func newPgxCashSessionRepository(pool *pgxpool.Pool) portsrepo.CashSessionRepositoryFacade {
	return &PgxCashSessionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CashSessionRepositoryFacade = (*PgxCashSessionRepository)(nil)

func (r *PgxCashSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	return selectSession(ctx, r.Pool, `WHERE session_id = $1`, sessionID, false)
}

func (r *PgxCashSessionRepository) FindOpenSession(ctx context.Context, scopeKey string) (*domain.CashSession, error) {
	return selectSession(ctx, r.Pool, `WHERE scope_key = $1 AND status = 'open'`, scopeKey, false)
}

func (r *PgxCashSessionRepository) SaveSession(ctx context.Context, session domain.CashSession) error {
	return updateSession(ctx, r.Pool, session)
}

func selectSession(ctx context.Context, q querier, where string, arg string, forUpdate bool) (*domain.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions ` + where
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var m models.CashSession
	err := q.QueryRow(ctx, query, arg).Scan(
		&m.SessionID,
		&m.ScopeKey,
		&m.OpenedBy,
		&m.OpenTime,
		&m.CloseTime,
		&m.ClosedBy,
		&m.InitialBalance,
		&m.ExpectedCash,
		&m.SalesCash,
		&m.SalesCard,
		&m.SalesOther,
		&m.ActualCash,
		&m.Difference,
		&m.Status,
	)
	if err != nil {
		return nil, translateError(err, "cash session "+arg)
	}
	s := mapping.ToDomainCashSession(m)
	return &s, nil
}

// insertSession relies on the partial unique index over open sessions per
// scope; a violation comes back as apperrors.ErrDuplicate.
func insertSession(ctx context.Context, q querier, session domain.CashSession) error {
	m := mapping.ToModelCashSession(session)
	_, err := q.Exec(ctx, `
		INSERT INTO cash_sessions (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.SessionID,
		m.ScopeKey,
		m.OpenedBy,
		m.OpenTime,
		m.CloseTime,
		m.ClosedBy,
		m.InitialBalance,
		m.ExpectedCash,
		m.SalesCash,
		m.SalesCard,
		m.SalesOther,
		m.ActualCash,
		m.Difference,
		m.Status,
	)
	return translateError(err, "insert cash session "+m.SessionID)
}

func updateSession(ctx context.Context, q querier, session domain.CashSession) error {
	m := mapping.ToModelCashSession(session)
	tag, err := q.Exec(ctx, `
		UPDATE cash_sessions
		SET expected_cash = $2, sales_cash = $3, sales_card = $4, sales_other = $5,
		    actual_cash = $6, difference = $7, close_time = $8, closed_by = $9, status = $10
		WHERE session_id = $1`,
		m.SessionID,
		m.ExpectedCash,
		m.SalesCash,
		m.SalesCard,
		m.SalesOther,
		m.ActualCash,
		m.Difference,
		m.CloseTime,
		m.ClosedBy,
		m.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update cash session %s: %w", m.SessionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cash session %s: %w", m.SessionID, apperrors.ErrNotFound)
	}
	return nil
}
