package models

import "github.com/shopspring/decimal"

// User is the database row for a registered user, including the running
// pending aggregates maintained by the reconciliation engine.
type User struct {
	UserID            string          `db:"user_id"`
	Name              string          `db:"name"`
	Email             string          `db:"email"`
	PasswordHash      string          `db:"password_hash"`
	Role              string          `db:"role"`
	InventoryID       string          `db:"inventory_id"`
	PendingReceivable decimal.Decimal `db:"pending_receivable"`
	PendingPayable    decimal.Decimal `db:"pending_payable"`
	AuditFields
}
