package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
)

// OrderFilter narrows, sorts and pages an order listing. SortCol must already
// be a whitelisted column name.
type OrderFilter struct {
	UserID    string
	PersonID  string
	Status    string
	Type      string
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	SortCol   string
	SortDesc  bool
	Limit     int
	Offset    int
}

// OrderRepositoryFacade defines persistence for orders. Every write that
// carries a domain.BalanceDelta applies the order mutation and the user/person
// aggregate adjustments within a single database transaction, locking the
// affected rows, so a partial reconciliation is never observable.
type OrderRepositoryFacade interface {
	// SaveOrder inserts the order with its lines, applies the balance delta,
	// and adds the given item IDs to the inventory (implicit additions for
	// purchase orders), all atomically.
	SaveOrder(ctx context.Context, order domain.Order, inventoryID string, addItemIDs []string, delta domain.BalanceDelta) error

	// FindOrderByID retrieves an order with its lines.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// UpdateOrder replaces the order header and lines and applies the balance
	// delta atomically.
	UpdateOrder(ctx context.Context, order domain.Order, delta domain.BalanceDelta) error

	// DeleteOrder removes the order and its lines and applies the balance
	// delta atomically.
	DeleteOrder(ctx context.Context, order domain.Order, delta domain.BalanceDelta) error

	// ListOrders retrieves a page of matching orders, with person and item
	// names resolved for display, plus the total count.
	ListOrders(ctx context.Context, filter OrderFilter) ([]domain.Order, int, error)
}
