package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo       UserRepositoryFacade
	PersonRepo     PersonRepositoryFacade
	InventoryRepo  InventoryRepositoryFacade
	OrderRepo      OrderRepositoryFacade
	ReportingRepo  ReportingRepositoryFacade
	CollectionRepo CollectionRepositoryFacade
	ImageRepo      ImageRepositoryFacade
}
