package repositories

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// SaleReader defines read operations for sale records
type SaleReader interface {
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales returns a page ordered newest first and the token for the next page.
	ListSales(ctx context.Context, filter domain.SaleFilter, limit int, nextToken *string) ([]domain.Sale, *string, error)
}

// SaleWriter defines unlocked write operations for sale records
type SaleWriter interface {
	InsertSale(ctx context.Context, sale domain.Sale) error
}

// SaleRepositoryFacade combines all sale repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
