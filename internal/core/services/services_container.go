package services

import (
	portsrepo "github.com/warestock/warehouse_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/warestock/warehouse_ledger_app/internal/core/ports/services"
	"github.com/warestock/warehouse_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Product = NewProductService(repos.ProductRepo)
	container.Ledger = NewLedgerService(repos.ProductRepo, repos.LedgerRepo, cfg.ApplyMaxRetries, cfg.ApplyRetryBackoff)
	container.Reporting = NewReportingService(repos.ProductRepo)

	return container
}
