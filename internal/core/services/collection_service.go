package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portsrepo "github.com/tradeledger/trade_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
	"github.com/tradeledger/trade_ledger_app/internal/middleware"
)

// collectionService manages cash-collection records and their append-only
// amount history.
type collectionService struct {
	collectionRepo portsrepo.CollectionRepositoryFacade
}

// NewCollectionService creates a new collection service.
func NewCollectionService(collectionRepo portsrepo.CollectionRepositoryFacade) portssvc.CollectionSvcFacade {
	return &collectionService{collectionRepo: collectionRepo}
}

var _ portssvc.CollectionSvcFacade = (*collectionService)(nil)

// CreateCollection creates a collection scoped to the user with an optional
// image.
func (s *collectionService) CreateCollection(ctx context.Context, userID string, req dto.CreateCollectionRequest, imageID *string) (*domain.Collection, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	collection := domain.Collection{
		CollectionID:     uuid.NewString(),
		UserID:           userID,
		BankName:         req.BankName,
		AgentName:        req.AgentName,
		AgentPhoneNumber: req.AgentPhoneNumber,
		ImageID:          imageID,
		Amount:           decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.collectionRepo.SaveCollection(ctx, collection); err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	logger.Info("Collection created", "collection_id", collection.CollectionID)
	return &collection, nil
}

// GetCollection retrieves a collection owned by the user with its transaction
// history.
func (s *collectionService) GetCollection(ctx context.Context, userID, collectionID string) (*domain.Collection, error) {
	return s.collectionRepo.FindCollectionForUser(ctx, userID, collectionID)
}

// ListCollections retrieves a page of the user's collections.
func (s *collectionService) ListCollections(ctx context.Context, userID string, params dto.ListCollectionsParams) ([]domain.Collection, int, error) {
	params.Normalize()
	collections, total, err := s.collectionRepo.ListCollectionsByUser(ctx, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list collections: %w", err)
	}
	return collections, total, nil
}

// AddAmount appends an {amount, timestamp} entry to the history and
// increments the running amount by the same value. Negative amounts pass
// through as corrections.
func (s *collectionService) AddAmount(ctx context.Context, userID string, req dto.AddAmountRequest) (*domain.Collection, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Ownership check before the append.
	if _, err := s.collectionRepo.FindCollectionForUser(ctx, userID, req.CollectionID); err != nil {
		return nil, err
	}

	txn := domain.CollectionTransaction{
		TransactionID: uuid.NewString(),
		CollectionID:  req.CollectionID,
		Amount:        req.Amount,
		OccurredAt:    time.Now(),
	}
	if err := s.collectionRepo.AppendTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to append collection amount: %w", err)
	}

	logger.Info("Collection amount added", "collection_id", req.CollectionID, "amount", req.Amount.String())
	return s.collectionRepo.FindCollectionForUser(ctx, userID, req.CollectionID)
}

// UpdateCollection updates mutable collection fields.
func (s *collectionService) UpdateCollection(ctx context.Context, userID, collectionID string, req dto.UpdateCollectionRequest) (*domain.Collection, error) {
	collection, err := s.collectionRepo.FindCollectionForUser(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	if req.BankName != nil {
		collection.BankName = *req.BankName
	}
	if req.AgentName != nil {
		collection.AgentName = *req.AgentName
	}
	if req.AgentPhoneNumber != nil {
		collection.AgentPhoneNumber = *req.AgentPhoneNumber
	}
	collection.LastUpdatedAt = time.Now()

	if err := s.collectionRepo.UpdateCollection(ctx, *collection); err != nil {
		return nil, fmt.Errorf("failed to update collection %s: %w", collectionID, err)
	}
	return collection, nil
}

// DeleteCollection removes a collection owned by the user.
func (s *collectionService) DeleteCollection(ctx context.Context, userID, collectionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.collectionRepo.DeleteCollection(ctx, userID, collectionID); err != nil {
		return err
	}

	logger.Info("Collection deleted", "collection_id", collectionID)
	return nil
}
