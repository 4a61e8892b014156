package repositories

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// CatalogReader is the read-only product lookup the ledger depends on.
type CatalogReader interface {
	// FindCatalogItemsByNames returns the products that exist, keyed by name.
	FindCatalogItemsByNames(ctx context.Context, names []string) (map[string]domain.CatalogItem, error)
}
