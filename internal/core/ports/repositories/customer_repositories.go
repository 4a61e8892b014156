package repositories

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// CustomerReader defines read operations for loyalty accounts
type CustomerReader interface {
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
}

// CustomerWriter defines unlocked write operations for loyalty accounts
type CustomerWriter interface {
	SaveCustomerTotals(ctx context.Context, customer domain.Customer) error
}

// CustomerRepositoryFacade combines all loyalty account repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
