package services

import (
	portsrepo "github.com/tradeledger/trade_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Auth = NewAuthService(cfg, repos.UserRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Person = NewPersonService(repos.PersonRepo, repos.OrderRepo)
	container.Order = NewOrderService(repos.OrderRepo, repos.PersonRepo, repos.InventoryRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.PersonRepo)
	container.Inventory = NewInventoryService(repos.InventoryRepo, repos.ImageRepo)
	container.Collection = NewCollectionService(repos.CollectionRepo)
	container.Image = NewImageService(repos.ImageRepo, cfg.MaxUploadSizeBytes)

	return container
}
