package services

import (
	"context"
	"time"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, int, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// UpdateUser updates an existing user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// DeleteUser removes a user account. Owned records are retained.
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}

// AuthSvcFacade defines registration, password login and token issuance.
type AuthSvcFacade interface {
	// Register creates a user with an empty inventory. Fails with ErrDuplicate
	// when the email is already registered.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// Authenticate verifies the email/password pair.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// IssueToken creates a signed bearer token for the user.
	IssueToken(user *domain.User) (token string, expiresAt time.Time, err error)
}
