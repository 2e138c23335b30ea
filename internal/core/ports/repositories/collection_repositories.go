package repositories

import (
	"context"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
)

// CollectionRepositoryFacade defines persistence for cash-collection records.
type CollectionRepositoryFacade interface {
	// SaveCollection inserts a new collection.
	SaveCollection(ctx context.Context, collection domain.Collection) error

	// FindCollectionForUser retrieves a collection owned by the user, with its
	// transaction history.
	FindCollectionForUser(ctx context.Context, userID, collectionID string) (*domain.Collection, error)

	// ListCollectionsByUser retrieves a page of the user's collections plus
	// the total count.
	ListCollectionsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Collection, int, error)

	// AppendTransaction appends a history entry and increments the running
	// amount by the same value in one transaction.
	AppendTransaction(ctx context.Context, txn domain.CollectionTransaction) error

	// UpdateCollection persists mutable collection fields.
	UpdateCollection(ctx context.Context, collection domain.Collection) error

	// DeleteCollection removes a collection owned by the user.
	DeleteCollection(ctx context.Context, userID, collectionID string) error
}
