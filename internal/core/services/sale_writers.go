package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// commitRequest is everything a write strategy needs to plan and persist one sale.
type commitRequest struct {
	scopeKey      string
	input         accounting.SaleInput
	catalog       map[string]domain.CatalogItem
	ingredientIDs []string
	opts          accounting.PlanOptions
}

// saleWriter reads the state a sale depends on, plans it with accounting.PlanSale
// and persists the plan. Strategies differ only in how reads and writes are grouped.
type saleWriter interface {
	Name() string
	Commit(ctx context.Context, req commitRequest) (*accounting.SalePlan, error)
}

// atomicSaleWriter runs the whole read-plan-write cycle in one unit of work with
// the rows it reads locked. It is the default.
type atomicSaleWriter struct {
	ledger portsrepo.TxRunner
}

func (w *atomicSaleWriter) Name() string { return StrategyAtomic }

func (w *atomicSaleWriter) Commit(ctx context.Context, req commitRequest) (*accounting.SalePlan, error) {
	var plan *accounting.SalePlan
	err := w.ledger.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		session, err := tx.LockOpenSession(ctx, req.scopeKey)
		if err != nil {
			return mapNotFound(err, apperrors.ErrNoOpenSession)
		}
		ingredients, err := tx.LockIngredients(ctx, req.ingredientIDs)
		if err != nil {
			return err
		}
		var customer *domain.Customer
		if req.input.CustomerID != nil {
			if customer, err = tx.LockCustomer(ctx, *req.input.CustomerID); err != nil {
				return mapNotFound(err, apperrors.ErrCustomerNotFound)
			}
		}

		p, err := accounting.PlanSale(req.input, req.catalog, accounting.CommitState{
			Session:     *session,
			Ingredients: ingredients,
			Customer:    customer,
		}, req.opts)
		if err != nil {
			return err
		}

		if len(p.StockDeltas) > 0 {
			if err := tx.AdjustIngredientStocks(ctx, p.StockDeltas, req.opts.OperatorID, req.opts.Now); err != nil {
				return err
			}
		}
		if p.Customer != nil {
			if err := tx.SaveCustomerTotals(ctx, *p.Customer); err != nil {
				return err
			}
		}
		if err := tx.SaveSession(ctx, p.Session); err != nil {
			return err
		}
		if err := tx.InsertSale(ctx, p.Sale); err != nil {
			return err
		}
		plan = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// parallelSaleWriter reads without locks and issues the four writes concurrently
// with absolute values. Two overlapping sales can read the same stock and both
// subtract from it, under-counting the deduction. Any failed write is reported
// as ErrPartialCommit because the other writes may already have landed.
type parallelSaleWriter struct {
	sessions    portsrepo.CashSessionRepositoryFacade
	ingredients portsrepo.IngredientRepositoryFacade
	customers   portsrepo.CustomerRepositoryFacade
	sales       portsrepo.SaleWriter
}

func (w *parallelSaleWriter) Name() string { return StrategyParallel }

func (w *parallelSaleWriter) Commit(ctx context.Context, req commitRequest) (*accounting.SalePlan, error) {
	var (
		session     *domain.CashSession
		ingredients map[string]domain.Ingredient
		customer    *domain.Customer
	)

	reads, rctx := errgroup.WithContext(ctx)
	reads.Go(func() error {
		var err error
		session, err = w.sessions.FindOpenSession(rctx, req.scopeKey)
		return mapNotFound(err, apperrors.ErrNoOpenSession)
	})
	reads.Go(func() error {
		var err error
		ingredients, err = w.ingredients.FindIngredientsByIDs(rctx, req.ingredientIDs)
		return err
	})
	if req.input.CustomerID != nil {
		reads.Go(func() error {
			var err error
			customer, err = w.customers.FindCustomerByID(rctx, *req.input.CustomerID)
			return mapNotFound(err, apperrors.ErrCustomerNotFound)
		})
	}
	if err := reads.Wait(); err != nil {
		return nil, err
	}

	plan, err := accounting.PlanSale(req.input, req.catalog, accounting.CommitState{
		Session:     *session,
		Ingredients: ingredients,
		Customer:    customer,
	}, req.opts)
	if err != nil {
		return nil, err
	}

	// Writes share no context cancellation so one failure does not abandon the others.
	var writes errgroup.Group
	if len(plan.Ingredients) > 0 {
		writes.Go(func() error {
			stocks := make(map[string]decimal.Decimal, len(plan.Ingredients))
			for id, ing := range plan.Ingredients {
				stocks[id] = ing.Stock
			}
			return w.ingredients.SetIngredientStocks(ctx, stocks, req.opts.OperatorID, req.opts.Now)
		})
	}
	if plan.Customer != nil {
		writes.Go(func() error {
			return w.customers.SaveCustomerTotals(ctx, *plan.Customer)
		})
	}
	writes.Go(func() error {
		return w.sessions.SaveSession(ctx, plan.Session)
	})
	writes.Go(func() error {
		return w.sales.InsertSale(ctx, plan.Sale)
	})
	if err := writes.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPartialCommit, err)
	}
	return plan, nil
}

// mapNotFound replaces a storage not-found error with a ledger error naming the precondition.
func mapNotFound(err, ledgerErr error) error {
	if err != nil && errors.Is(err, apperrors.ErrNotFound) {
		return ledgerErr
	}
	return err
}
