package services

import (
	"context"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
)

// CollectionSvcFacade defines operations on cash-collection records.
type CollectionSvcFacade interface {
	// CreateCollection creates a collection scoped to the user with an
	// optional image.
	CreateCollection(ctx context.Context, userID string, req dto.CreateCollectionRequest, imageID *string) (*domain.Collection, error)

	// GetCollection retrieves a collection owned by the user with its
	// transaction history.
	GetCollection(ctx context.Context, userID, collectionID string) (*domain.Collection, error)

	// ListCollections retrieves a page of the user's collections.
	ListCollections(ctx context.Context, userID string, params dto.ListCollectionsParams) ([]domain.Collection, int, error)

	// AddAmount appends an {amount, timestamp} entry to the history and
	// increments the running amount by the same value.
	AddAmount(ctx context.Context, userID string, req dto.AddAmountRequest) (*domain.Collection, error)

	// UpdateCollection updates mutable collection fields.
	UpdateCollection(ctx context.Context, userID, collectionID string, req dto.UpdateCollectionRequest) (*domain.Collection, error)

	// DeleteCollection removes a collection owned by the user.
	DeleteCollection(ctx context.Context, userID, collectionID string) error
}
