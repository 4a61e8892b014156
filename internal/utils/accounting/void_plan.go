package accounting

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RestoreSource selects where void restoration quantities come from.
type RestoreSource string

const (
	// RestoreFromLiveRecipe recomputes quantities from each product's current recipe.
	RestoreFromLiveRecipe RestoreSource = "live"
	// RestoreFromSnapshot uses the consumption recorded on the sale at commit time.
	RestoreFromSnapshot RestoreSource = "snapshot"
)

// ParseRestoreSource validates a configured restore source.
func ParseRestoreSource(v string) (RestoreSource, error) {
	switch RestoreSource(v) {
	case RestoreFromLiveRecipe, RestoreFromSnapshot:
		return RestoreSource(v), nil
	}
	return "", fmt.Errorf("unknown void restore source %q", v)
}

// RestorationFromRecipes sums qtyRequired x quantity over every sale line using
// the catalog as it is now. Lines whose product left the catalog are returned
// in skipped and restore nothing.
func RestorationFromRecipes(lines []domain.SaleLine, catalog map[string]domain.CatalogItem) (restore map[string]decimal.Decimal, skipped []string) {
	restore = make(map[string]decimal.Decimal)
	for _, line := range lines {
		product, ok := catalog[line.Name]
		if !ok {
			skipped = append(skipped, line.Name)
			continue
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		for _, r := range product.Recipe {
			restore[r.IngredientID] = restore[r.IngredientID].Add(r.QtyRequired.Mul(qty))
		}
	}
	return restore, skipped
}

// RestorationFromSnapshot returns the consumption recorded on the sale.
func RestorationFromSnapshot(sale domain.Sale) map[string]decimal.Decimal {
	restore := make(map[string]decimal.Decimal, len(sale.Consumption))
	for _, u := range sale.Consumption {
		restore[u.IngredientID] = restore[u.IngredientID].Add(u.Quantity)
	}
	return restore
}

// VoidPlan is every write an approved void performs.
type VoidPlan struct {
	Sale               domain.Sale
	StockDeltas        map[string]decimal.Decimal // positive, existing ingredients only
	SkippedIngredients []string                   // referenced but no longer stocked
	Customer           *domain.Customer
}

// VoidOptions identifies who approves the void and when.
type VoidOptions struct {
	ProcessedBy  string
	DirectReason *string
	Now          time.Time
}

// PlanVoid computes the compensating writes for a sale. Restoration for
// ingredients missing from existing is skipped rather than failing the void.
func PlanVoid(sale domain.Sale, restore map[string]decimal.Decimal, existing map[string]domain.Ingredient, customer *domain.Customer, opts VoidOptions) (*VoidPlan, error) {
	if sale.Status != domain.SaleCompleted && sale.Status != domain.SalePendingVoid {
		return nil, fmt.Errorf("%w: sale %s is %s", apperrors.ErrInvalidVoidTransition, sale.SaleID, sale.Status)
	}

	plan := &VoidPlan{StockDeltas: make(map[string]decimal.Decimal, len(restore))}
	for _, id := range IngredientIDs(restore) {
		if _, ok := existing[id]; !ok {
			plan.SkippedIngredients = append(plan.SkippedIngredients, id)
			continue
		}
		if restore[id].IsZero() {
			continue
		}
		plan.StockDeltas[id] = restore[id]
	}

	if customer != nil {
		c := *customer
		c.StampBalance = max(0, c.StampBalance-sale.StampsEarned+sale.StampsSpent)
		c.TotalPurchases = max(0, c.TotalPurchases-1)
		c.TotalSpent = decimal.Max(decimal.Zero, c.TotalSpent.Sub(sale.Total))
		c.LastUpdatedAt = opts.Now
		c.LastUpdatedBy = opts.ProcessedBy
		plan.Customer = &c
	}

	voided := sale
	voided.Status = domain.SaleVoided
	by := opts.ProcessedBy
	at := opts.Now
	voided.VoidProcessedBy = &by
	voided.VoidProcessedAt = &at
	if opts.DirectReason != nil && strings.TrimSpace(*opts.DirectReason) != "" {
		reason := strings.TrimSpace(*opts.DirectReason)
		voided.VoidReason = &reason
	}
	plan.Sale = voided
	return plan, nil
}

// RequestVoid moves a completed sale to pending_void.
func RequestVoid(sale domain.Sale, reason, requestedBy string, now time.Time) (domain.Sale, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return sale, apperrors.ErrVoidReasonRequired
	}
	if sale.Status != domain.SaleCompleted {
		return sale, fmt.Errorf("%w: only completed sales can be flagged for void, sale %s is %s",
			apperrors.ErrInvalidVoidTransition, sale.SaleID, sale.Status)
	}
	sale.Status = domain.SalePendingVoid
	sale.VoidReason = &reason
	sale.VoidRequestedBy = &requestedBy
	sale.VoidRequestedAt = &now
	return sale, nil
}

// RejectVoid returns a pending sale to completed. The request fields are
// cleared; the rejecting operator is kept as the last processor.
func RejectVoid(sale domain.Sale, processedBy string, now time.Time) (domain.Sale, error) {
	if sale.Status != domain.SalePendingVoid {
		return sale, fmt.Errorf("%w: only pending voids can be rejected, sale %s is %s",
			apperrors.ErrInvalidVoidTransition, sale.SaleID, sale.Status)
	}
	sale.Status = domain.SaleCompleted
	sale.VoidReason = nil
	sale.VoidRequestedBy = nil
	sale.VoidRequestedAt = nil
	sale.VoidProcessedBy = &processedBy
	sale.VoidProcessedAt = &now
	return sale, nil
}
