package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradeledger/trade_ledger_app/internal/apperrors"
	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portsrepo "github.com/tradeledger/trade_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
	"github.com/tradeledger/trade_ledger_app/internal/middleware"
	"github.com/tradeledger/trade_ledger_app/internal/utils/pagination"
)

// personSortColumns maps sortBy fields to persons columns.
var personSortColumns = map[string]string{
	"name":         "name",
	"createdAt":    "created_at",
	"totalOverdue": "total_overdue",
	"type":         "type",
}

// personService manages customers and suppliers scoped to their owning user.
type personService struct {
	personRepo portsrepo.PersonRepositoryFacade
	orderRepo  portsrepo.OrderRepositoryFacade
}

// NewPersonService creates a new person service.
func NewPersonService(personRepo portsrepo.PersonRepositoryFacade, orderRepo portsrepo.OrderRepositoryFacade) portssvc.PersonSvcFacade {
	return &personService{personRepo: personRepo, orderRepo: orderRepo}
}

var _ portssvc.PersonSvcFacade = (*personService)(nil)

// CreatePerson creates a person owned by the user. A positive initial
// totalOverdue also creates an opening balance order carrying the amount as
// pending, so the aggregate invariants hold from the start.
func (s *personService) CreatePerson(ctx context.Context, user *domain.User, req dto.CreatePersonRequest, imageID *string) (*domain.Person, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	overdue := decimal.Zero
	if req.TotalOverdue != nil {
		overdue = *req.TotalOverdue
	}
	if overdue.IsNegative() {
		return nil, fmt.Errorf("%w: totalOverdue cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	person := domain.Person{
		PersonID:     uuid.NewString(),
		UserID:       user.UserID,
		Name:         req.Name,
		PhoneNumber:  req.PhoneNumber,
		ShopNumber:   req.ShopNumber,
		Email:        req.Email,
		Type:         domain.PersonType(req.Type),
		ImageID:      imageID,
		TotalOverdue: overdue,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.personRepo.SavePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	if overdue.IsPositive() {
		orderType := domain.OrderSale
		if person.Type == domain.PersonSupplier {
			orderType = domain.OrderPurchase
		}
		opening := domain.Order{
			OrderID:       uuid.NewString(),
			UserID:        user.UserID,
			PersonID:      person.PersonID,
			Type:          orderType,
			Status:        domain.OrderPending,
			AmountPaid:    decimal.Zero,
			AmountPending: overdue,
			TotalAmount:   overdue,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		// The person row already carries the opening overdue; only the user
		// aggregate needs the delta.
		delta := domain.NewBalanceDelta()
		if orderType == domain.OrderSale {
			delta.Receivable = overdue
		} else {
			delta.Payable = overdue
		}
		if err := s.orderRepo.SaveOrder(ctx, opening, "", nil, delta); err != nil {
			return nil, fmt.Errorf("failed to create opening balance order: %w", err)
		}
		logger.Info("Opening balance order created", "person_id", person.PersonID, "order_id", opening.OrderID)
	}

	logger.Info("Person created", "person_id", person.PersonID, "type", req.Type)
	return &person, nil
}

// findOwnedPerson loads the person and verifies ownership.
func (s *personService) findOwnedPerson(ctx context.Context, user *domain.User, personID string) (*domain.Person, error) {
	person, err := s.personRepo.FindPersonByID(ctx, personID)
	if err != nil {
		return nil, err
	}
	if person.UserID != user.UserID {
		return nil, fmt.Errorf("%w: person %s does not belong to user", apperrors.ErrForbidden, personID)
	}
	return person, nil
}

// GetPerson retrieves a person owned by the user.
func (s *personService) GetPerson(ctx context.Context, user *domain.User, personID string) (*domain.Person, error) {
	return s.findOwnedPerson(ctx, user, personID)
}

// ListPersons retrieves a filtered page of the user's persons.
func (s *personService) ListPersons(ctx context.Context, userID string, params dto.ListPersonsParams) ([]domain.Person, int, error) {
	params.Normalize()
	sort := pagination.ParseSortBy(params.SortBy, map[string]bool{
		"name": true, "createdAt": true, "totalOverdue": true, "type": true,
	})

	filter := portsrepo.PersonFilter{
		Type:     params.Type,
		Name:     params.Name,
		SortCol:  personSortColumns[sort.Field],
		SortDesc: sort.Desc,
		Limit:    params.Limit,
		Offset:   params.Offset(),
	}
	persons, total, err := s.personRepo.ListPersonsByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list persons: %w", err)
	}
	return persons, total, nil
}

// UpdatePerson updates mutable person fields. The person's type is immutable.
func (s *personService) UpdatePerson(ctx context.Context, user *domain.User, personID string, req dto.UpdatePersonRequest) (*domain.Person, error) {
	person, err := s.findOwnedPerson(ctx, user, personID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		person.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		person.PhoneNumber = *req.PhoneNumber
	}
	if req.ShopNumber != nil {
		person.ShopNumber = *req.ShopNumber
	}
	if req.Email != nil {
		person.Email = *req.Email
	}
	person.LastUpdatedAt = time.Now()

	if err := s.personRepo.UpdatePerson(ctx, *person); err != nil {
		return nil, fmt.Errorf("failed to update person %s: %w", personID, err)
	}
	return person, nil
}

// DeletePerson removes a person, subtracting their totalOverdue from the
// user's matching aggregate. Orders referencing the person are retained.
func (s *personService) DeletePerson(ctx context.Context, user *domain.User, personID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	person, err := s.findOwnedPerson(ctx, user, personID)
	if err != nil {
		return err
	}

	if err := s.personRepo.DeletePersonAdjustingUser(ctx, *person); err != nil {
		return fmt.Errorf("failed to delete person %s: %w", personID, err)
	}

	logger.Info("Person deleted", "person_id", personID)
	return nil
}
