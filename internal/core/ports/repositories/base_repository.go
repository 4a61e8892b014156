package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerTx is the set of reads and writes available inside one atomic unit of work.
// Lock* reads hold their rows until the unit ends. They return apperrors.ErrNotFound
// for a missing single entity; LockIngredients omits missing ids from its result.
type LedgerTx interface {
	LockOpenSession(ctx context.Context, scopeKey string) (*domain.CashSession, error)
	LockSession(ctx context.Context, sessionID string) (*domain.CashSession, error)
	LockIngredients(ctx context.Context, ingredientIDs []string) (map[string]domain.Ingredient, error)
	LockCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
	LockSale(ctx context.Context, saleID string) (*domain.Sale, error)

	// AdjustIngredientStocks adds each delta to the stored stock.
	AdjustIngredientStocks(ctx context.Context, deltas map[string]decimal.Decimal, updatedBy string, at time.Time) error
	SaveCustomerTotals(ctx context.Context, customer domain.Customer) error
	// InsertSession returns apperrors.ErrDuplicate when the scope already has an open session.
	InsertSession(ctx context.Context, session domain.CashSession) error
	SaveSession(ctx context.Context, session domain.CashSession) error
	InsertSale(ctx context.Context, sale domain.Sale) error
	UpdateSaleVoidState(ctx context.Context, sale domain.Sale) error
}

// TxRunner executes a function as a single unit of work. The function may be
// invoked more than once when the store retries a conflicting transaction, so
// it must not have effects outside tx.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}
