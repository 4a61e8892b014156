package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/eapache/go-resiliency/retrier"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// LedgerOption configures the unit-of-work runner.
type LedgerOption func(*PgxLedger)

// WithRetries sets how many times a transaction that lost a serialization
// race is re-run and the first backoff delay, which doubles on every attempt.
func WithRetries(maxRetries int, baseDelay time.Duration) LedgerOption {
	return func(l *PgxLedger) {
		l.maxRetries = maxRetries
		l.baseDelay = baseDelay
	}
}

// WithRetryObserver is called before every re-run.
func WithRetryObserver(fn func()) LedgerOption {
	return func(l *PgxLedger) {
		l.onRetry = fn
	}
}

// PgxLedger runs units of work as SERIALIZABLE transactions. Rows read through
// the Lock* methods are held with FOR UPDATE until commit.
type PgxLedger struct {
	BaseRepository
	maxRetries int
	baseDelay  time.Duration
	onRetry    func()
}

func newPgxLedger(pool *pgxpool.Pool, options ...LedgerOption) *PgxLedger {
	l := &PgxLedger{
		BaseRepository: BaseRepository{Pool: pool},
		maxRetries:     5,
		baseDelay:      20 * time.Millisecond,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

var _ portsrepo.TxRunner = (*PgxLedger)(nil)

// serializationClassifier retries only transactions aborted by a concurrent one.
type serializationClassifier struct{}

func (serializationClassifier) Classify(err error) retrier.Action {
	switch {
	case err == nil:
		return retrier.Succeed
	case isRetryable(err):
		return retrier.Retry
	default:
		return retrier.Fail
	}
}

// WithinTx runs fn in a transaction, re-running it when Postgres aborts the
// transaction with a serialization failure or deadlock. Exhausted retries
// surface as apperrors.ErrCommitConflict.
func (l *PgxLedger) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	attempt := 0
	r := retrier.New(retrier.ExponentialBackoff(l.maxRetries, l.baseDelay), serializationClassifier{})
	err := r.RunCtx(ctx, func(ctx context.Context) error {
		if attempt > 0 && l.onRetry != nil {
			l.onRetry()
		}
		attempt++
		return l.runOnce(ctx, fn)
	})
	if err != nil && isRetryable(err) {
		return fmt.Errorf("%w: gave up after %d attempts: %v", apperrors.ErrCommitConflict, attempt, err)
	}
	return err
}

func (l *PgxLedger) runOnce(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := l.Begin(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer l.Rollback(ctx, tx)

	if err := fn(ctx, &pgxLedgerTx{tx: tx}); err != nil {
		return err
	}
	return l.Commit(ctx, tx)
}

// pgxLedgerTx implements portsrepo.LedgerTx over one pgx transaction.
type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

func (t *pgxLedgerTx) LockOpenSession(ctx context.Context, scopeKey string) (*domain.CashSession, error) {
	return selectSession(ctx, t.tx, `WHERE scope_key = $1 AND status = 'open'`, scopeKey, true)
}

func (t *pgxLedgerTx) LockSession(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	return selectSession(ctx, t.tx, `WHERE session_id = $1`, sessionID, true)
}

func (t *pgxLedgerTx) LockIngredients(ctx context.Context, ingredientIDs []string) (map[string]domain.Ingredient, error) {
	return selectIngredients(ctx, t.tx, ingredientIDs, true)
}

func (t *pgxLedgerTx) LockCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	return selectCustomer(ctx, t.tx, customerID, true)
}

func (t *pgxLedgerTx) LockSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	return selectSale(ctx, t.tx, saleID, true)
}

func (t *pgxLedgerTx) AdjustIngredientStocks(ctx context.Context, deltas map[string]decimal.Decimal, updatedBy string, at time.Time) error {
	return updateStocks(ctx, t.tx,
		`UPDATE ingredients SET stock = stock + $2, last_updated_at = $3, last_updated_by = $4 WHERE ingredient_id = $1`,
		deltas, updatedBy, at)
}

func (t *pgxLedgerTx) SaveCustomerTotals(ctx context.Context, customer domain.Customer) error {
	return updateCustomerTotals(ctx, t.tx, customer)
}

func (t *pgxLedgerTx) InsertSession(ctx context.Context, session domain.CashSession) error {
	return insertSession(ctx, t.tx, session)
}

func (t *pgxLedgerTx) SaveSession(ctx context.Context, session domain.CashSession) error {
	return updateSession(ctx, t.tx, session)
}

func (t *pgxLedgerTx) InsertSale(ctx context.Context, sale domain.Sale) error {
	return insertSale(ctx, t.tx, sale)
}

func (t *pgxLedgerTx) UpdateSaleVoidState(ctx context.Context, sale domain.Sale) error {
	return updateSaleVoidState(ctx, t.tx, sale)
}
