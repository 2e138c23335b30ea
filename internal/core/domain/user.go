package domain

import (
	"github.com/shopspring/decimal"
)

// Role identifies the access level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Permission is a tag gating access to a group of routes.
type Permission string

const (
	PermGetSelf     Permission = "getSelf"
	PermManageSelf  Permission = "manageSelf"
	PermGetUsers    Permission = "getUsers"
	PermManageUsers Permission = "manageUsers"
)

// rolePermissions is the fixed role -> permission set mapping, resolved once at startup.
var rolePermissions = map[Role][]Permission{
	RoleUser:  {PermGetSelf, PermManageSelf},
	RoleAdmin: {PermGetSelf, PermManageSelf, PermGetUsers, PermManageUsers},
}

// HasPermission reports whether the role grants the given permission tag.
func (r Role) HasPermission(p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// User is the root aggregate: it owns one inventory and sets of persons,
// orders and collections, and carries the running pending balances.
type User struct {
	UserID            string          `json:"userID"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	PasswordHash      string          `json:"-"`
	Role              Role            `json:"role"`
	InventoryID       string          `json:"inventoryID"`
	PendingReceivable decimal.Decimal `json:"pendingReceivable"`
	PendingPayable    decimal.Decimal `json:"pendingPayable"`
	AuditFields
}
