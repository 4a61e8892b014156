package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	Ledger         TxRunner
	IngredientRepo IngredientRepositoryFacade
	CustomerRepo   CustomerRepositoryFacade
	SessionRepo    CashSessionRepositoryFacade
	SaleRepo       SaleRepositoryFacade
	CatalogRepo    CatalogReader
	ReportingRepo  ReportingRepository
}
