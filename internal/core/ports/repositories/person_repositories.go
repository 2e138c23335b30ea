package repositories

import (
	"context"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
)

// PersonFilter narrows and pages a person listing.
type PersonFilter struct {
	Type     string
	Name     string
	SortCol  string
	SortDesc bool
	Limit    int
	Offset   int
}

// PersonRepositoryFacade defines persistence operations for persons.
type PersonRepositoryFacade interface {
	// SavePerson inserts a new person.
	SavePerson(ctx context.Context, person domain.Person) error

	// FindPersonByID retrieves a person by ID.
	FindPersonByID(ctx context.Context, personID string) (*domain.Person, error)

	// FindPersonsByIDs retrieves several persons keyed by ID.
	FindPersonsByIDs(ctx context.Context, personIDs []string) (map[string]domain.Person, error)

	// ListPersonsByUser retrieves a page of the user's persons plus the total count.
	ListPersonsByUser(ctx context.Context, userID string, filter PersonFilter) ([]domain.Person, int, error)

	// UpdatePerson persists mutable person fields.
	UpdatePerson(ctx context.Context, person domain.Person) error

	// DeletePersonAdjustingUser removes the person and subtracts their
	// totalOverdue from the owning user's matching aggregate in one
	// transaction. The person's orders are retained.
	DeletePersonAdjustingUser(ctx context.Context, person domain.Person) error
}
