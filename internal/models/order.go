package models

import "github.com/shopspring/decimal"

// Order is the database row for an order header. Line items live in
// order_items; ownership is carried by user_id and person_id columns rather
// than back-reference arrays.
type Order struct {
	OrderID       string          `db:"order_id"`
	UserID        string          `db:"user_id"`
	PersonID      string          `db:"person_id"`
	Type          string          `db:"type"`
	Status        string          `db:"status"`
	AmountPaid    decimal.Decimal `db:"amount_paid"`
	AmountPending decimal.Decimal `db:"amount_pending"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	AuditFields
}

// OrderItem is the database row for a single order line.
type OrderItem struct {
	OrderItemID string          `db:"order_item_id"`
	OrderID     string          `db:"order_id"`
	ItemID      string          `db:"item_id"`
	Quantity    int64           `db:"quantity"`
	Price       decimal.Decimal `db:"price"`
	Unit        string          `db:"unit"`
}
