package services

// ServiceContainer holds all service facades used by the handlers.
type ServiceContainer struct {
	Auth       AuthSvcFacade
	User       UserSvcFacade
	Person     PersonSvcFacade
	Order      OrderSvcFacade
	Reporting  ReportingSvcFacade
	Inventory  InventorySvcFacade
	Collection CollectionSvcFacade
	Image      ImageSvcFacade
}
