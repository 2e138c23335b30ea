package services

import (
	"context"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
)

// PersonSvcFacade defines operations on customers and suppliers.
type PersonSvcFacade interface {
	// CreatePerson creates a person owned by the user. A positive initial
	// totalOverdue creates an opening balance order against the person.
	CreatePerson(ctx context.Context, user *domain.User, req dto.CreatePersonRequest, imageID *string) (*domain.Person, error)

	// GetPerson retrieves a person owned by the user.
	GetPerson(ctx context.Context, user *domain.User, personID string) (*domain.Person, error)

	// ListPersons retrieves a filtered page of the user's persons.
	ListPersons(ctx context.Context, userID string, params dto.ListPersonsParams) ([]domain.Person, int, error)

	// UpdatePerson updates mutable person fields.
	UpdatePerson(ctx context.Context, user *domain.User, personID string, req dto.UpdatePersonRequest) (*domain.Person, error)

	// DeletePerson removes a person, subtracting their totalOverdue from the
	// user's matching aggregate. The person's orders are retained.
	DeletePerson(ctx context.Context, user *domain.User, personID string) error
}
