package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tradeledger/trade_ledger_app/internal/apperrors"
	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/core/services"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
)

type PersonServiceTestSuite struct {
	suite.Suite
	mockPersonRepo *MockPersonRepository
	mockOrderRepo  *MockOrderRepository
	service        portssvc.PersonSvcFacade

	user *domain.User
}

func (suite *PersonServiceTestSuite) SetupTest() {
	suite.mockPersonRepo = new(MockPersonRepository)
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.service = services.NewPersonService(suite.mockPersonRepo, suite.mockOrderRepo)

	suite.user = &domain.User{
		UserID:      uuid.NewString(),
		InventoryID: uuid.NewString(),
		Role:        domain.RoleUser,
	}
}

func (suite *PersonServiceTestSuite) TestCreatePerson_NoOverdue() {
	ctx := context.Background()

	suite.mockPersonRepo.On("SavePerson", ctx, mock.MatchedBy(func(person domain.Person) bool {
		return person.UserID == suite.user.UserID &&
			person.Type == domain.PersonCustomer &&
			person.TotalOverdue.IsZero()
	})).Return(nil).Once()

	person, err := suite.service.CreatePerson(ctx, suite.user, dto.CreatePersonRequest{
		Name:        "Ravi Traders",
		PhoneNumber: "9876543210",
		Type:        "customer",
	}, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(person)
	suite.NotEmpty(person.PersonID)
	suite.mockPersonRepo.AssertExpectations(suite.T())
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PersonServiceTestSuite) TestCreatePerson_OpeningBalanceOrder() {
	ctx := context.Background()
	overdue := dec("500")

	suite.mockPersonRepo.On("SavePerson", ctx, mock.AnythingOfType("domain.Person")).Return(nil).Once()
	suite.mockOrderRepo.On("SaveOrder", ctx, mock.MatchedBy(func(order domain.Order) bool {
		return order.Type == domain.OrderSale &&
			order.Status == domain.OrderPending &&
			order.AmountPaid.IsZero() &&
			order.AmountPending.Equal(overdue) &&
			order.TotalAmount.Equal(overdue)
	}), "", []string(nil), mock.MatchedBy(func(delta domain.BalanceDelta) bool {
		// the person row already carries the overdue, only the user
		// aggregate moves
		return delta.Receivable.Equal(overdue) && len(delta.PersonOverdue) == 0
	})).Return(nil).Once()

	person, err := suite.service.CreatePerson(ctx, suite.user, dto.CreatePersonRequest{
		Name:         "Ravi Traders",
		PhoneNumber:  "9876543210",
		Type:         "customer",
		TotalOverdue: &overdue,
	}, nil)

	suite.Require().NoError(err)
	suite.True(person.TotalOverdue.Equal(overdue))
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *PersonServiceTestSuite) TestCreatePerson_SupplierOverdueIsPayable() {
	ctx := context.Background()
	overdue := dec("250")

	suite.mockPersonRepo.On("SavePerson", ctx, mock.AnythingOfType("domain.Person")).Return(nil).Once()
	suite.mockOrderRepo.On("SaveOrder", ctx, mock.MatchedBy(func(order domain.Order) bool {
		return order.Type == domain.OrderPurchase
	}), "", []string(nil), mock.MatchedBy(func(delta domain.BalanceDelta) bool {
		return delta.Payable.Equal(overdue) && delta.Receivable.IsZero()
	})).Return(nil).Once()

	_, err := suite.service.CreatePerson(ctx, suite.user, dto.CreatePersonRequest{
		Name:         "Gupta Suppliers",
		PhoneNumber:  "9876500000",
		Type:         "supplier",
		TotalOverdue: &overdue,
	}, nil)

	suite.Require().NoError(err)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *PersonServiceTestSuite) TestCreatePerson_NegativeOverdueRejected() {
	ctx := context.Background()
	overdue := dec("-1")

	person, err := suite.service.CreatePerson(ctx, suite.user, dto.CreatePersonRequest{
		Name:         "Ravi Traders",
		PhoneNumber:  "9876543210",
		Type:         "customer",
		TotalOverdue: &overdue,
	}, nil)

	suite.Require().Error(err)
	suite.Nil(person)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPersonRepo.AssertNotCalled(suite.T(), "SavePerson", mock.Anything, mock.Anything)
}

func (suite *PersonServiceTestSuite) TestGetPerson_Forbidden() {
	ctx := context.Background()
	other := &domain.Person{
		PersonID: uuid.NewString(),
		UserID:   uuid.NewString(),
	}

	suite.mockPersonRepo.On("FindPersonByID", ctx, other.PersonID).Return(other, nil).Once()

	person, err := suite.service.GetPerson(ctx, suite.user, other.PersonID)

	suite.Require().Error(err)
	suite.Nil(person)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PersonServiceTestSuite) TestUpdatePerson_PartialFields() {
	ctx := context.Background()
	existing := &domain.Person{
		PersonID:    uuid.NewString(),
		UserID:      suite.user.UserID,
		Name:        "Ravi Traders",
		PhoneNumber: "9876543210",
		Type:        domain.PersonCustomer,
	}
	newName := "Ravi & Sons"

	suite.mockPersonRepo.On("FindPersonByID", ctx, existing.PersonID).Return(existing, nil).Once()
	suite.mockPersonRepo.On("UpdatePerson", ctx, mock.MatchedBy(func(person domain.Person) bool {
		return person.Name == newName && person.PhoneNumber == "9876543210"
	})).Return(nil).Once()

	person, err := suite.service.UpdatePerson(ctx, suite.user, existing.PersonID, dto.UpdatePersonRequest{
		Name: &newName,
	})

	suite.Require().NoError(err)
	suite.Equal(newName, person.Name)
	suite.mockPersonRepo.AssertExpectations(suite.T())
}

func (suite *PersonServiceTestSuite) TestDeletePerson() {
	ctx := context.Background()
	existing := &domain.Person{
		PersonID:     uuid.NewString(),
		UserID:       suite.user.UserID,
		Type:         domain.PersonCustomer,
		TotalOverdue: dec("75"),
	}

	suite.mockPersonRepo.On("FindPersonByID", ctx, existing.PersonID).Return(existing, nil).Once()
	suite.mockPersonRepo.On("DeletePersonAdjustingUser", ctx, *existing).Return(nil).Once()

	err := suite.service.DeletePerson(ctx, suite.user, existing.PersonID)

	suite.Require().NoError(err)
	suite.mockPersonRepo.AssertExpectations(suite.T())
}

func (suite *PersonServiceTestSuite) TestDeletePerson_NotFound() {
	ctx := context.Background()
	personID := uuid.NewString()

	suite.mockPersonRepo.On("FindPersonByID", ctx, personID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeletePerson(ctx, suite.user, personID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestPersonServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PersonServiceTestSuite))
}
