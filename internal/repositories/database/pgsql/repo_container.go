package pgsql

import (
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, options ...LedgerOption) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Ledger:         newPgxLedger(dbPool, options...),
		IngredientRepo: newPgxIngredientRepository(dbPool),
		CustomerRepo:   newPgxCustomerRepository(dbPool),
		SessionRepo:    newPgxCashSessionRepository(dbPool),
		SaleRepo:       newPgxSaleRepository(dbPool),
		CatalogRepo:    newCatalogRepository(dbPool),
		ReportingRepo:  newReportingRepository(dbPool),
	}
}
