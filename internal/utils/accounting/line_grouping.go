package accounting

import (
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineKey identifies a sale line. Paid and redeemed units of the same product
// are separate lines because they differ in price and stamp effect.
type LineKey struct {
	Name     string
	Redeemed bool
}

// KeyOf returns the grouping key of a cart item.
func KeyOf(item domain.CartItem) LineKey {
	return LineKey{Name: item.Name, Redeemed: item.IsRedeemed}
}

// GroupCartLines merges cart items that share a LineKey, keeping the order in
// which each key first appeared. Redeemed lines carry a zero unit price.
func GroupCartLines(items []domain.CartItem, prices map[string]decimal.Decimal) []domain.SaleLine {
	index := make(map[LineKey]int, len(items))
	lines := make([]domain.SaleLine, 0, len(items))
	for _, item := range items {
		key := KeyOf(item)
		if i, ok := index[key]; ok {
			lines[i].Quantity += item.Quantity
			continue
		}
		price := prices[item.Name]
		if item.IsRedeemed {
			price = decimal.Zero
		}
		index[key] = len(lines)
		lines = append(lines, domain.SaleLine{
			Name:       item.Name,
			UnitPrice:  price,
			Quantity:   item.Quantity,
			IsRedeemed: item.IsRedeemed,
		})
	}
	return lines
}
