package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Person is the database row for a customer or supplier.
type Person struct {
	PersonID     string          `db:"person_id"`
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	PhoneNumber  string          `db:"phone_number"`
	ShopNumber   sql.NullString  `db:"shop_number"`
	Email        sql.NullString  `db:"email"`
	Type         string          `db:"type"`
	ImageID      sql.NullString  `db:"image_id"`
	TotalOverdue decimal.Decimal `db:"total_overdue"`
	AuditFields
}
