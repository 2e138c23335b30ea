package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tradeledger/trade_ledger_app/internal/apperrors"
	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portsrepo "github.com/tradeledger/trade_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/core/services"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
)

// --- Mock CollectionRepository ---
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) SaveCollection(ctx context.Context, collection domain.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockCollectionRepository) FindCollectionForUser(ctx context.Context, userID, collectionID string) (*domain.Collection, error) {
	args := m.Called(ctx, userID, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *MockCollectionRepository) ListCollectionsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Collection, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Collection), args.Int(1), args.Error(2)
}

func (m *MockCollectionRepository) AppendTransaction(ctx context.Context, txn domain.CollectionTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockCollectionRepository) UpdateCollection(ctx context.Context, collection domain.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockCollectionRepository) DeleteCollection(ctx context.Context, userID, collectionID string) error {
	args := m.Called(ctx, userID, collectionID)
	return args.Error(0)
}

var _ portsrepo.CollectionRepositoryFacade = (*MockCollectionRepository)(nil)

type CollectionServiceTestSuite struct {
	suite.Suite
	mockCollectionRepo *MockCollectionRepository
	service            portssvc.CollectionSvcFacade

	userID string
}

func (suite *CollectionServiceTestSuite) SetupTest() {
	suite.mockCollectionRepo = new(MockCollectionRepository)
	suite.service = services.NewCollectionService(suite.mockCollectionRepo)
	suite.userID = uuid.NewString()
}

func (suite *CollectionServiceTestSuite) TestCreateCollection_StartsAtZero() {
	ctx := context.Background()

	suite.mockCollectionRepo.On("SaveCollection", ctx, mock.MatchedBy(func(collection domain.Collection) bool {
		return collection.UserID == suite.userID &&
			collection.BankName == "SBI" &&
			collection.Amount.IsZero()
	})).Return(nil).Once()

	collection, err := suite.service.CreateCollection(ctx, suite.userID, dto.CreateCollectionRequest{
		BankName:         "SBI",
		AgentName:        "Suresh",
		AgentPhoneNumber: "9876543210",
	}, nil)

	suite.Require().NoError(err)
	suite.True(collection.Amount.IsZero())
	suite.mockCollectionRepo.AssertExpectations(suite.T())
}

func (suite *CollectionServiceTestSuite) TestAddAmount_AppendsAndRefetches() {
	ctx := context.Background()
	collectionID := uuid.NewString()
	before := &domain.Collection{CollectionID: collectionID, UserID: suite.userID, Amount: dec("100")}
	after := &domain.Collection{CollectionID: collectionID, UserID: suite.userID, Amount: dec("150")}

	suite.mockCollectionRepo.On("FindCollectionForUser", ctx, suite.userID, collectionID).Return(before, nil).Once()
	suite.mockCollectionRepo.On("AppendTransaction", ctx, mock.MatchedBy(func(txn domain.CollectionTransaction) bool {
		return txn.CollectionID == collectionID &&
			txn.Amount.Equal(dec("50")) &&
			txn.TransactionID != "" &&
			!txn.OccurredAt.IsZero()
	})).Return(nil).Once()
	suite.mockCollectionRepo.On("FindCollectionForUser", ctx, suite.userID, collectionID).Return(after, nil).Once()

	collection, err := suite.service.AddAmount(ctx, suite.userID, dto.AddAmountRequest{
		CollectionID: collectionID,
		Amount:       dec("50"),
	})

	suite.Require().NoError(err)
	suite.True(collection.Amount.Equal(dec("150")))
	suite.mockCollectionRepo.AssertExpectations(suite.T())
}

func (suite *CollectionServiceTestSuite) TestAddAmount_NotOwned() {
	ctx := context.Background()
	collectionID := uuid.NewString()

	suite.mockCollectionRepo.On("FindCollectionForUser", ctx, suite.userID, collectionID).
		Return(nil, apperrors.ErrNotFound).Once()

	collection, err := suite.service.AddAmount(ctx, suite.userID, dto.AddAmountRequest{
		CollectionID: collectionID,
		Amount:       dec("50"),
	})

	suite.Require().Error(err)
	suite.Nil(collection)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockCollectionRepo.AssertNotCalled(suite.T(), "AppendTransaction", mock.Anything, mock.Anything)
}

func (suite *CollectionServiceTestSuite) TestAddAmount_NegativeCorrection() {
	ctx := context.Background()
	collectionID := uuid.NewString()
	collection := &domain.Collection{CollectionID: collectionID, UserID: suite.userID, Amount: dec("100")}

	suite.mockCollectionRepo.On("FindCollectionForUser", ctx, suite.userID, collectionID).Return(collection, nil).Twice()
	suite.mockCollectionRepo.On("AppendTransaction", ctx, mock.MatchedBy(func(txn domain.CollectionTransaction) bool {
		return txn.Amount.Equal(dec("-30"))
	})).Return(nil).Once()

	_, err := suite.service.AddAmount(ctx, suite.userID, dto.AddAmountRequest{
		CollectionID: collectionID,
		Amount:       dec("-30"),
	})

	suite.Require().NoError(err)
	suite.mockCollectionRepo.AssertExpectations(suite.T())
}

func (suite *CollectionServiceTestSuite) TestUpdateCollection_PartialFields() {
	ctx := context.Background()
	collectionID := uuid.NewString()
	existing := &domain.Collection{
		CollectionID: collectionID,
		UserID:       suite.userID,
		BankName:     "SBI",
		AgentName:    "Suresh",
	}
	newBank := "HDFC"

	suite.mockCollectionRepo.On("FindCollectionForUser", ctx, suite.userID, collectionID).Return(existing, nil).Once()
	suite.mockCollectionRepo.On("UpdateCollection", ctx, mock.MatchedBy(func(collection domain.Collection) bool {
		return collection.BankName == newBank && collection.AgentName == "Suresh"
	})).Return(nil).Once()

	collection, err := suite.service.UpdateCollection(ctx, suite.userID, collectionID, dto.UpdateCollectionRequest{
		BankName: &newBank,
	})

	suite.Require().NoError(err)
	suite.Equal(newBank, collection.BankName)
	suite.mockCollectionRepo.AssertExpectations(suite.T())
}

func (suite *CollectionServiceTestSuite) TestDeleteCollection() {
	ctx := context.Background()
	collectionID := uuid.NewString()

	suite.mockCollectionRepo.On("DeleteCollection", ctx, suite.userID, collectionID).Return(nil).Once()

	err := suite.service.DeleteCollection(ctx, suite.userID, collectionID)

	suite.Require().NoError(err)
	suite.mockCollectionRepo.AssertExpectations(suite.T())
}

func TestCollectionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CollectionServiceTestSuite))
}
