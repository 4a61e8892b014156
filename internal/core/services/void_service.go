package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type voidService struct {
	BaseService
	ledger        portsrepo.TxRunner
	sales         portsrepo.SaleReader
	catalog       portsrepo.CatalogReader
	restoreSource accounting.RestoreSource
}

// NewVoidService creates the void workflow controller.
func NewVoidService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.VoidSvcFacade {
	cfg := newSettings(options)
	return &voidService{
		BaseService:   cfg.base,
		ledger:        repos.Ledger,
		sales:         repos.SaleRepo,
		catalog:       repos.CatalogRepo,
		restoreSource: cfg.restoreSource,
	}
}

var _ portssvc.VoidSvcFacade = (*voidService)(nil)

func (s *voidService) RequestVoid(ctx context.Context, saleID, reason string, operator domain.Operator) (*domain.Sale, error) {
	var updated domain.Sale
	err := s.ledger.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		sale, err := tx.LockSale(ctx, saleID)
		if err != nil {
			return mapNotFound(err, apperrors.ErrSaleNotFound)
		}
		if updated, err = accounting.RequestVoid(*sale, reason, operator.ID, s.now()); err != nil {
			return err
		}
		return tx.UpdateSaleVoidState(ctx, updated)
	})
	if err != nil {
		s.logFailure(ctx, err, "Void request failed", slog.String("sale_id", saleID))
		return nil, err
	}

	s.Metrics.VoidTransition("requested")
	s.LogInfo(ctx, "Void requested", slog.String("sale_id", saleID), slog.String("requested_by", operator.ID))
	s.publish(ctx, domain.EventVoidRequested, saleID, operator.ID, updated)
	return &updated, nil
}

func (s *voidService) RejectVoid(ctx context.Context, saleID string, operator domain.Operator) (*domain.Sale, error) {
	if err := requireVoidPrivilege(operator); err != nil {
		s.logFailure(ctx, err, "Void rejection refused", slog.String("sale_id", saleID))
		return nil, err
	}

	var updated domain.Sale
	err := s.ledger.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		sale, err := tx.LockSale(ctx, saleID)
		if err != nil {
			return mapNotFound(err, apperrors.ErrSaleNotFound)
		}
		if updated, err = accounting.RejectVoid(*sale, operator.ID, s.now()); err != nil {
			return err
		}
		return tx.UpdateSaleVoidState(ctx, updated)
	})
	if err != nil {
		s.logFailure(ctx, err, "Void rejection failed", slog.String("sale_id", saleID))
		return nil, err
	}

	s.Metrics.VoidTransition("rejected")
	s.LogInfo(ctx, "Void rejected", slog.String("sale_id", saleID), slog.String("processed_by", operator.ID))
	s.publish(ctx, domain.EventVoidRejected, saleID, operator.ID, updated)
	return &updated, nil
}

// ApproveVoid restores the sale's ingredients and reverses its loyalty effect
// in one unit of work. Cash session totals are left as they are; the cash
// surfaces at close through the manual count.
func (s *voidService) ApproveVoid(ctx context.Context, saleID string, directReason *string, operator domain.Operator) (outcome *domain.VoidOutcome, err error) {
	ctx, span := startSpan(ctx, "VoidService.ApproveVoid", trace.WithAttributes(
		attribute.String("sale_id", saleID),
		attribute.String("restore_source", string(s.restoreSource)),
	))
	defer func() { endSpan(span, err) }()

	if err := requireVoidPrivilege(operator); err != nil {
		s.logFailure(ctx, err, "Void approval refused", slog.String("sale_id", saleID))
		return nil, err
	}

	// The catalog is outside the unit of work; line names never change after commit.
	var catalog map[string]domain.CatalogItem
	if s.restoreSource == accounting.RestoreFromLiveRecipe {
		current, err := s.sales.FindSaleByID(ctx, saleID)
		if err != nil {
			err = mapNotFound(err, apperrors.ErrSaleNotFound)
			s.logFailure(ctx, err, "Void approval failed", slog.String("sale_id", saleID))
			return nil, err
		}
		if current.Status == domain.SaleVoided {
			err = fmt.Errorf("%w: sale %s is already voided", apperrors.ErrInvalidVoidTransition, saleID)
			s.logFailure(ctx, err, "Void approval failed", slog.String("sale_id", saleID))
			return nil, err
		}
		if catalog, err = s.catalog.FindCatalogItemsByNames(ctx, lineNames(current.LineItems)); err != nil {
			err = fmt.Errorf("failed to look up catalog: %w", err)
			s.LogError(ctx, err, "Void approval failed", slog.String("sale_id", saleID))
			return nil, err
		}
	}

	err = s.ledger.WithinTx(context.WithoutCancel(ctx), func(ctx context.Context, tx portsrepo.LedgerTx) error {
		sale, err := tx.LockSale(ctx, saleID)
		if err != nil {
			return mapNotFound(err, apperrors.ErrSaleNotFound)
		}

		var (
			restore         map[string]decimal.Decimal
			skippedProducts []string
		)
		if s.restoreSource == accounting.RestoreFromSnapshot {
			restore = accounting.RestorationFromSnapshot(*sale)
		} else {
			restore, skippedProducts = accounting.RestorationFromRecipes(sale.LineItems, catalog)
		}

		existing, err := tx.LockIngredients(ctx, accounting.IngredientIDs(restore))
		if err != nil {
			return err
		}
		var customer *domain.Customer
		if sale.CustomerID != nil {
			customer, err = tx.LockCustomer(ctx, *sale.CustomerID)
			if err != nil && !isNotFound(err) {
				return err
			}
		}

		plan, err := accounting.PlanVoid(*sale, restore, existing, customer, accounting.VoidOptions{
			ProcessedBy:  operator.ID,
			DirectReason: directReason,
			Now:          s.now(),
		})
		if err != nil {
			return err
		}

		if len(plan.StockDeltas) > 0 {
			if err := tx.AdjustIngredientStocks(ctx, plan.StockDeltas, operator.ID, s.now()); err != nil {
				return err
			}
		}
		if plan.Customer != nil {
			if err := tx.SaveCustomerTotals(ctx, *plan.Customer); err != nil {
				return err
			}
		}
		if err := tx.UpdateSaleVoidState(ctx, plan.Sale); err != nil {
			return err
		}
		outcome = &domain.VoidOutcome{
			Sale:               plan.Sale,
			SkippedIngredients: plan.SkippedIngredients,
			SkippedProducts:    skippedProducts,
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Void approval failed", slog.String("sale_id", saleID))
		return nil, err
	}

	s.Metrics.VoidTransition("approved")
	if len(outcome.SkippedIngredients) > 0 || len(outcome.SkippedProducts) > 0 {
		s.LogWarn(ctx, "Void skipped restoration for missing records",
			slog.String("sale_id", saleID),
			slog.Any("ingredients", outcome.SkippedIngredients),
			slog.Any("products", outcome.SkippedProducts))
	}
	s.LogInfo(ctx, "Sale voided", slog.String("sale_id", saleID), slog.String("processed_by", operator.ID))
	s.publish(ctx, domain.EventSaleVoided, saleID, operator.ID, outcome.Sale)
	return outcome, nil
}

func lineNames(lines []domain.SaleLine) []string {
	seen := make(map[string]struct{}, len(lines))
	names := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.Name]; ok {
			continue
		}
		seen[l.Name] = struct{}{}
		names = append(names, l.Name)
	}
	return names
}
