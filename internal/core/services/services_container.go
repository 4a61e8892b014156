package services

import (
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/platform/config"
	"github.com/SscSPs/pos_ledger/internal/platform/metrics"
)

// Collaborators are the out-of-process dependencies the ledger calls into.
// Any of them may be nil.
type Collaborators struct {
	Weather portssvc.WeatherProvider
	Events  portssvc.EventPublisher
	Metrics *metrics.Metrics
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, collab Collaborators) *portssvc.ServiceContainer {
	options := []ServiceOption{
		WithMetrics(collab.Metrics),
		WithEventPublisher(collab.Events),
		WithCommitStrategy(cfg.CommitStrategy),
		WithStrictStock(cfg.StrictStock),
		WithSessionScope(cfg.SessionScope),
		WithRestoreSource(cfg.VoidRestoreSource),
	}
	if collab.Weather != nil {
		options = append(options, WithWeatherProvider(collab.Weather, cfg.WeatherTimeout))
	}

	return &portssvc.ServiceContainer{
		Sale:        NewSaleService(repos, options...),
		Void:        NewVoidService(repos, options...),
		CashSession: NewCashSessionService(repos, options...),
		Inventory:   NewInventoryService(repos, options...),
		Reporting:   NewReportingService(repos, options...),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.InventorySvcFacade = (*inventoryService)(nil)
	_ portssvc.ReportingService   = (*reportingService)(nil)
)
