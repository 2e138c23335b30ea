package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
)

// RegisterUserRequest defines the data required to register a new user.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers differentiate omitted fields from zero values.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// ListUsersParams defines query parameters for listing users (admin only).
type ListUsersParams struct {
	PageParams
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	UserID            string          `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Role              string          `json:"role"`
	InventoryID       string          `json:"inventoryID"`
	PendingReceivable decimal.Decimal `json:"pendingReceivable"`
	PendingPayable    decimal.Decimal `json:"pendingPayable"`
}

// ToUserResponse converts a domain.User to its API representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:            u.UserID,
		Name:              u.Name,
		Email:             u.Email,
		Role:              string(u.Role),
		InventoryID:       u.InventoryID,
		PendingReceivable: u.PendingReceivable,
		PendingPayable:    u.PendingPayable,
	}
}

// ListUsersResponse wraps a page of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
	PageMeta
}
