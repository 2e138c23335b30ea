package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tradeledger/trade_ledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	personRepo := newPgxPersonRepository(dbPool)
	inventoryRepo := newPgxInventoryRepository(dbPool)
	orderRepo := newPgxOrderRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool, orderRepo)
	collectionRepo := newPgxCollectionRepository(dbPool)
	imageRepo := newPgxImageRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:       userRepo,
		PersonRepo:     personRepo,
		InventoryRepo:  inventoryRepo,
		OrderRepo:      orderRepo,
		ReportingRepo:  reportingRepo,
		CollectionRepo: collectionRepo,
		ImageRepo:      imageRepo,
	}
}
