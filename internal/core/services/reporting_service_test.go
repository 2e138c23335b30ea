package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portsrepo "github.com/tradeledger/trade_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/core/services"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) FindOrdersForReport(ctx context.Context, filter portsrepo.ReportFilter) ([]domain.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockPersonRepo    *MockPersonRepository
	service           portssvc.ReportingSvcFacade

	userID string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockPersonRepo = new(MockPersonRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockPersonRepo)
	suite.userID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) orderFor(personID string, createdAt time.Time, paid, pending string) domain.Order {
	return domain.Order{
		OrderID:       uuid.NewString(),
		UserID:        suite.userID,
		PersonID:      personID,
		Type:          domain.OrderSale,
		Status:        domain.OrderPending,
		AmountPaid:    dec(paid),
		AmountPending: dec(pending),
		TotalAmount:   dec(paid).Add(dec(pending)),
		AuditFields:   domain.AuditFields{CreatedAt: createdAt, LastUpdatedAt: createdAt},
	}
}

func (suite *ReportingServiceTestSuite) TestReportByPerson_GroupsAndTotals() {
	ctx := context.Background()
	personA := uuid.NewString()
	personB := uuid.NewString()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	orders := []domain.Order{
		suite.orderFor(personA, base, "60", "40"),
		suite.orderFor(personB, base.Add(time.Hour), "20", "0"),
		suite.orderFor(personA, base.Add(2*time.Hour), "30", "10"),
	}

	suite.mockReportingRepo.On("FindOrdersForReport", ctx, mock.MatchedBy(func(filter portsrepo.ReportFilter) bool {
		return filter.UserID == suite.userID
	})).Return(orders, nil).Once()
	suite.mockPersonRepo.On("FindPersonsByIDs", ctx, []string{personA, personB}).Return(map[string]domain.Person{
		personA: {PersonID: personA, Name: "Ravi Traders"},
		personB: {PersonID: personB, Name: "Sharma Stores"},
	}, nil).Once()

	resp, err := suite.service.ReportByPerson(ctx, suite.userID, dto.ReportParams{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Results, 2)
	// personA's last order is the most recent, so their group comes first
	suite.Equal(personA, resp.Results[0].Person.PersonID)
	suite.Len(resp.Results[0].Orders, 2)
	suite.True(resp.Results[0].TotalAmountPaid.Equal(dec("90")))
	suite.Equal(personB, resp.Results[1].Person.PersonID)
	suite.True(resp.Results[1].TotalAmountPaid.Equal(dec("20")))
	// global paid sum covers the whole filtered set
	suite.True(resp.TotalAmount.Equal(dec("110")))
	suite.Equal(2, resp.TotalResults)
}

func (suite *ReportingServiceTestSuite) TestReportByPerson_PaginatesGroups() {
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	var orders []domain.Order
	persons := make(map[string]domain.Person)
	for i := 0; i < 3; i++ {
		personID := uuid.NewString()
		persons[personID] = domain.Person{PersonID: personID}
		orders = append(orders, suite.orderFor(personID, base.Add(time.Duration(i)*time.Hour), "10", "0"))
	}

	suite.mockReportingRepo.On("FindOrdersForReport", ctx, mock.Anything).Return(orders, nil).Once()
	suite.mockPersonRepo.On("FindPersonsByIDs", ctx, mock.Anything).Return(persons, nil).Once()

	params := dto.ReportParams{}
	params.Page = 2
	params.Limit = 2
	resp, err := suite.service.ReportByPerson(ctx, suite.userID, params)

	suite.Require().NoError(err)
	suite.Len(resp.Results, 1)
	suite.Equal(3, resp.TotalResults)
	suite.Equal(2, resp.TotalPages)
}

func (suite *ReportingServiceTestSuite) TestGroupedByDate_SameDayOneBucket() {
	ctx := context.Background()
	personA := uuid.NewString()
	personB := uuid.NewString()
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	orders := []domain.Order{
		suite.orderFor(personA, day, "0", "40"),
		suite.orderFor(personA, day.Add(time.Hour), "0", "10"),
		suite.orderFor(personB, day.Add(2*time.Hour), "0", "5"),
	}

	suite.mockReportingRepo.On("FindOrdersForReport", ctx, mock.Anything).Return(orders, nil).Once()
	suite.mockPersonRepo.On("FindPersonsByIDs", ctx, mock.Anything).Return(map[string]domain.Person{
		personA: {PersonID: personA},
		personB: {PersonID: personB},
	}, nil).Once()

	resp, err := suite.service.GroupedByDate(ctx, suite.userID, dto.GroupedReportParams{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Results, 1)
	bucket := resp.Results[0]
	suite.Equal("2026-03-10", bucket.Date)
	suite.Require().Len(bucket.Persons, 2)
	suite.True(bucket.Persons[0].PersonPendingAmountSum.Equal(dec("50")))
	suite.True(bucket.Persons[1].PersonPendingAmountSum.Equal(dec("5")))
	suite.True(bucket.TotalPendingAmount.Equal(dec("55")))
}

func (suite *ReportingServiceTestSuite) TestGroupedByDate_NewestDayFirst() {
	ctx := context.Background()
	personA := uuid.NewString()
	older := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	orders := []domain.Order{
		suite.orderFor(personA, older, "0", "10"),
		suite.orderFor(personA, newer, "0", "20"),
	}

	suite.mockReportingRepo.On("FindOrdersForReport", ctx, mock.Anything).Return(orders, nil).Once()
	suite.mockPersonRepo.On("FindPersonsByIDs", ctx, mock.Anything).Return(map[string]domain.Person{
		personA: {PersonID: personA},
	}, nil).Once()

	resp, err := suite.service.GroupedByDate(ctx, suite.userID, dto.GroupedReportParams{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Results, 2)
	suite.Equal("2026-03-10", resp.Results[0].Date)
	suite.Equal("2026-03-09", resp.Results[1].Date)
}

func (suite *ReportingServiceTestSuite) TestGroupedByDate_PersonTypeFilterForwarded() {
	ctx := context.Background()

	suite.mockReportingRepo.On("FindOrdersForReport", ctx, mock.MatchedBy(func(filter portsrepo.ReportFilter) bool {
		return filter.PersonType == "customer" && filter.OrderType == ""
	})).Return([]domain.Order{}, nil).Once()
	suite.mockPersonRepo.On("FindPersonsByIDs", ctx, mock.Anything).Return(map[string]domain.Person{}, nil).Once()

	resp, err := suite.service.GroupedByDate(ctx, suite.userID, dto.GroupedReportParams{Type: "customer"})

	suite.Require().NoError(err)
	suite.Empty(resp.Results)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
