package services

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/dto"
)

// SaleWriterSvc defines the checkout operation
type SaleWriterSvc interface {
	// CommitSale records a checkout and updates inventory, loyalty and the open cash session as one unit.
	CommitSale(ctx context.Context, req dto.CommitSaleRequest, operator domain.Operator) (*domain.SaleReceipt, error)
}

// SaleReaderSvc defines read operations for sale records
type SaleReaderSvc interface {
	GetSale(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error)
}

// SaleSvcFacade combines all sale service interfaces
type SaleSvcFacade interface {
	SaleWriterSvc
	SaleReaderSvc
}
