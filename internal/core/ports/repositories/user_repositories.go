package repositories

import (
	"context"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for users. The pending
// receivable/payable aggregates are only ever adjusted by the order
// repository inside its reconciliation transactions.
type UserRepositoryFacade interface {
	// CreateUserWithInventory inserts the user and their one-to-one empty
	// inventory atomically.
	CreateUserWithInventory(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a page of users plus the total count.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error)

	// UpdateUser persists mutable user fields (name, email).
	UpdateUser(ctx context.Context, user domain.User) error

	// DeleteUser removes the user row. Owned records are retained; cascading
	// cleanup is deliberately not performed.
	DeleteUser(ctx context.Context, userID string) error
}
