package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderType distinguishes sales (to customers) from purchases (from suppliers).
type OrderType string

const (
	OrderSale     OrderType = "sale"
	OrderPurchase OrderType = "purchase"
)

// OrderStatus is derived from the paid amount; it is never client-supplied.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
)

// ItemUnit is the measurement unit of an order line.
type ItemUnit string

const (
	UnitKilogram ItemUnit = "kilogram"
	UnitGram     ItemUnit = "gram"
	UnitNumber   ItemUnit = "number"
)

// ErrPaidExceedsTotal rejects orders whose paid amount exceeds the computed total.
var ErrPaidExceedsTotal = errors.New("paid amount cannot be greater than total amount")

// OrderItem is a single line of an order referencing a catalog item.
type OrderItem struct {
	ItemID   string          `json:"itemID"`
	ItemName string          `json:"itemName,omitempty"` // resolved for display
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Unit     ItemUnit        `json:"unit"`
}

// LineTotal returns quantity x price for the line.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// Order belongs to one user and one person. TotalAmount, AmountPending and
// Status are derived and recomputed server-side before every persist.
type Order struct {
	OrderID       string          `json:"orderID"`
	UserID        string          `json:"userID"`
	PersonID      string          `json:"personID"`
	PersonName    string          `json:"personName,omitempty"` // resolved for display
	Type          OrderType       `json:"type"`
	Status        OrderStatus     `json:"status"`
	Items         []OrderItem     `json:"items"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	AmountPending decimal.Decimal `json:"amountPending"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AuditFields
}

// OrderTotals holds the derived fields of an order.
type OrderTotals struct {
	TotalAmount   decimal.Decimal
	AmountPending decimal.Decimal
	Status        OrderStatus
}

// ComputeOrderTotals derives totalAmount, amountPending and status from the
// line items and the paid amount. It is the single place these invariants are
// computed; callers apply the result before every persist. Returns
// ErrPaidExceedsTotal when amountPaid > totalAmount.
func ComputeOrderTotals(items []OrderItem, amountPaid decimal.Decimal) (OrderTotals, error) {
	total := decimal.Zero
	for _, line := range items {
		total = total.Add(line.LineTotal())
	}
	if amountPaid.GreaterThan(total) {
		return OrderTotals{}, ErrPaidExceedsTotal
	}
	totals := OrderTotals{
		TotalAmount:   total,
		AmountPending: total.Sub(amountPaid),
		Status:        OrderPending,
	}
	if amountPaid.GreaterThanOrEqual(total) {
		totals.Status = OrderCompleted
	}
	return totals, nil
}

// CounterpartyType returns the person type an order type may be placed against.
func (t OrderType) CounterpartyType() PersonType {
	if t == OrderSale {
		return PersonCustomer
	}
	return PersonSupplier
}

// ValidateCounterparty checks the sale=>customer / purchase=>supplier rule,
// naming the mismatch in the returned error.
func (t OrderType) ValidateCounterparty(personType PersonType) error {
	if t.CounterpartyType() == personType {
		return nil
	}
	if t == OrderSale {
		return fmt.Errorf("a sales order cannot be placed for a supplier")
	}
	return fmt.Errorf("a purchase order cannot be placed for a customer")
}

// BalanceDelta accumulates the aggregate adjustments of one reconciliation
// step: deltas to the owning user's pending receivable/payable and to each
// affected person's total overdue. Every mutation of an order's person, type
// or paid amount builds exactly one delta (subtract-then-add) which the store
// applies atomically.
type BalanceDelta struct {
	Receivable    decimal.Decimal
	Payable       decimal.Decimal
	PersonOverdue map[string]decimal.Decimal
}

// NewBalanceDelta returns an empty delta.
func NewBalanceDelta() BalanceDelta {
	return BalanceDelta{
		Receivable:    decimal.Zero,
		Payable:       decimal.Zero,
		PersonOverdue: make(map[string]decimal.Decimal),
	}
}

// ApplyPending adds an order's pending amount to the matching user aggregate
// and to the person's overdue.
func (d *BalanceDelta) ApplyPending(orderType OrderType, personID string, pending decimal.Decimal) {
	if orderType == OrderSale {
		d.Receivable = d.Receivable.Add(pending)
	} else {
		d.Payable = d.Payable.Add(pending)
	}
	d.PersonOverdue[personID] = d.PersonOverdue[personID].Add(pending)
}

// ReversePending subtracts an order's pending amount from the matching user
// aggregate and from the person's overdue.
func (d *BalanceDelta) ReversePending(orderType OrderType, personID string, pending decimal.Decimal) {
	d.ApplyPending(orderType, personID, pending.Neg())
}

// IsZero reports whether the delta carries no adjustment at all.
func (d BalanceDelta) IsZero() bool {
	if !d.Receivable.IsZero() || !d.Payable.IsZero() {
		return false
	}
	for _, v := range d.PersonOverdue {
		if !v.IsZero() {
			return false
		}
	}
	return true
}
