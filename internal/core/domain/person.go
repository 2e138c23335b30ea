package domain

import (
	"github.com/shopspring/decimal"
)

// PersonType distinguishes customers (sale counterparties) from suppliers
// (purchase counterparties). It never changes across an order's life.
type PersonType string

const (
	PersonCustomer PersonType = "customer"
	PersonSupplier PersonType = "supplier"
)

// Person represents a customer or supplier owned by exactly one user.
// TotalOverdue mirrors the sum of the person's orders' pending amounts.
type Person struct {
	PersonID     string          `json:"personID"`
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	PhoneNumber  string          `json:"phoneNumber"`
	ShopNumber   string          `json:"shopNumber,omitempty"`
	Email        string          `json:"email,omitempty"`
	Type         PersonType      `json:"type"`
	ImageID      *string         `json:"imageID,omitempty"`
	TotalOverdue decimal.Decimal `json:"totalOverdue"`
	AuditFields
}
