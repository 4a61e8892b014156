package accounting

import (
	"fmt"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleInput is a checkout as submitted by the register.
type SaleInput struct {
	Cart           []domain.CartItem
	Total          decimal.Decimal
	CustomerID     *string
	PaymentMethod  domain.PaymentMethod
	AmountReceived *decimal.Decimal
	ChangeGiven    *decimal.Decimal
}

// CommitState is the stored state a sale is planned against.
type CommitState struct {
	Session     domain.CashSession
	Ingredients map[string]domain.Ingredient
	Customer    *domain.Customer // nil when no customer is attached
}

// PlanOptions carries the values a plan needs that do not come from storage.
type PlanOptions struct {
	SaleID      string
	OperatorID  string
	Now         time.Time
	StrictStock bool
	Weather     *domain.WeatherSnapshot
}

// SalePlan is every write a commit performs, computed before any of them happens.
type SalePlan struct {
	Sale          domain.Sale
	StockDeltas   map[string]decimal.Decimal   // negative, by ingredient id
	Ingredients   map[string]domain.Ingredient // values after the deduction
	Customer      *domain.Customer             // values after the loyalty update
	Session       domain.CashSession           // values after the payment
	NegativeStock []string                     // ingredient names driven below zero
	LowStock      []string                     // ingredient names at or below minimum
}

// ValidateSaleInput checks what can be checked without reading storage.
func ValidateSaleInput(in SaleInput) error {
	if len(in.Cart) == 0 {
		return apperrors.ErrEmptyCart
	}
	for _, item := range in.Cart {
		if item.Quantity <= 0 || item.Quantity > domain.MaxLineQuantity {
			return fmt.Errorf("%w: %q has quantity %d", apperrors.ErrInvalidQuantity, item.Name, item.Quantity)
		}
	}
	if !in.PaymentMethod.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidPayment, in.PaymentMethod)
	}
	if in.Total.IsNegative() {
		return fmt.Errorf("%w: total must not be negative", apperrors.ErrValidation)
	}
	if in.PaymentMethod == domain.PaymentCash && in.AmountReceived != nil && in.AmountReceived.LessThan(in.Total) {
		return fmt.Errorf("%w: received %s for a total of %s", apperrors.ErrInsufficientPayment, in.AmountReceived, in.Total)
	}
	return nil
}

// CatalogTotal is the sum of paid line prices; redeemed lines are free.
func CatalogTotal(cart []domain.CartItem, catalog map[string]domain.CatalogItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range cart {
		if item.IsRedeemed {
			continue
		}
		total = total.Add(catalog[item.Name].Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// PlanSale computes the post-commit values of every entity a checkout touches
// and validates them. It performs no I/O, so the same plan can be executed by
// any write strategy.
func PlanSale(in SaleInput, catalog map[string]domain.CatalogItem, state CommitState, opts PlanOptions) (*SalePlan, error) {
	if err := ValidateSaleInput(in); err != nil {
		return nil, err
	}

	required, err := RequiredIngredients(in.Cart, catalog)
	if err != nil {
		return nil, err
	}

	cost := decimal.Zero
	var stampsEarned, redeemedUnits int64
	prices := make(map[string]decimal.Decimal, len(catalog))
	for _, item := range in.Cart {
		product := catalog[item.Name]
		prices[item.Name] = product.Price
		qty := decimal.NewFromInt(int64(item.Quantity))
		cost = cost.Add(ResolveRecipe(product, state.Ingredients).UnitCost.Mul(qty))
		if item.IsRedeemed {
			redeemedUnits += int64(item.Quantity)
		} else if product.GrantsLoyaltyStamp {
			stampsEarned += int64(item.Quantity)
		}
	}
	stampsSpent := redeemedUnits * domain.StampsPerReward

	plan := &SalePlan{
		StockDeltas: make(map[string]decimal.Decimal, len(required)),
		Ingredients: make(map[string]domain.Ingredient, len(required)),
	}

	for _, id := range IngredientIDs(required) {
		ing, ok := state.Ingredients[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrIngredientNotFound, id)
		}
		ing.Stock = ing.Stock.Sub(required[id])
		ing.LastUpdatedAt = opts.Now
		ing.LastUpdatedBy = opts.OperatorID
		if ing.Stock.IsNegative() {
			if opts.StrictStock {
				return nil, fmt.Errorf("%w: %s would drop to %s %s",
					apperrors.ErrInsufficientStock, ing.Name, ing.Stock, ing.Unit)
			}
			plan.NegativeStock = append(plan.NegativeStock, ing.Name)
		}
		if ing.IsLow() {
			plan.LowStock = append(plan.LowStock, ing.Name)
		}
		plan.StockDeltas[id] = required[id].Neg()
		plan.Ingredients[id] = ing
	}

	// Loyalty: with no customer attached nothing is earned and nothing can be redeemed.
	balance := int64(0)
	if state.Customer != nil {
		balance = state.Customer.StampBalance
	} else {
		stampsEarned = 0
	}
	// Compared before subtracting so a large redemption cannot wrap the balance.
	if stampsSpent < 0 || stampsSpent > balance+stampsEarned {
		return nil, fmt.Errorf("%w: %d stamps needed, %d available",
			apperrors.ErrInsufficientStamps, stampsSpent, balance)
	}
	newBalance := balance + stampsEarned - stampsSpent
	if state.Customer != nil {
		customer := *state.Customer
		customer.StampBalance = newBalance
		customer.TotalPurchases++
		customer.TotalSpent = customer.TotalSpent.Add(in.Total)
		now := opts.Now
		customer.LastVisit = &now
		customer.LastUpdatedAt = opts.Now
		customer.LastUpdatedBy = opts.OperatorID
		plan.Customer = &customer
	}

	plan.Session = state.Session
	plan.Session.RecordPayment(in.PaymentMethod, in.Total)

	plan.Sale = domain.Sale{
		SaleID:         opts.SaleID,
		Timestamp:      opts.Now,
		SessionID:      state.Session.SessionID,
		Total:          in.Total,
		CostOfGoods:    cost,
		LineItems:      GroupCartLines(in.Cart, prices),
		CustomerID:     in.CustomerID,
		StampsEarned:   stampsEarned,
		StampsSpent:    stampsSpent,
		PaymentMethod:  in.PaymentMethod,
		AmountReceived: in.AmountReceived,
		Change:         computeChange(in),
		WeatherContext: opts.Weather,
		Consumption:    ToUsage(required),
		Status:         domain.SaleCompleted,
		CreatedBy:      opts.OperatorID,
	}
	return plan, nil
}

func computeChange(in SaleInput) *decimal.Decimal {
	if in.ChangeGiven != nil {
		change := *in.ChangeGiven
		return &change
	}
	if in.PaymentMethod != domain.PaymentCash || in.AmountReceived == nil {
		return nil
	}
	change := in.AmountReceived.Sub(in.Total)
	return &change
}
