package services

import (
	"context"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
)

// OrderSvcFacade is the balance reconciliation engine: every order mutation
// keeps Order totals, Person.totalOverdue and the user's
// pendingReceivable/pendingPayable mutually consistent.
type OrderSvcFacade interface {
	// CreateOrder validates the counterparty and inventory membership,
	// recomputes totals and persists the order with its aggregate adjustments.
	CreateOrder(ctx context.Context, user *domain.User, req dto.CreateOrderRequest) (*domain.Order, error)

	// GetOrder retrieves an order owned by the user.
	GetOrder(ctx context.Context, user *domain.User, orderID string) (*domain.Order, error)

	// UpdateOrder recomputes totals, moves the order between persons when the
	// counterparty changed, and reapplies the pending amounts
	// (subtract-then-add) on the matching aggregates.
	UpdateOrder(ctx context.Context, user *domain.User, orderID string, req dto.UpdateOrderRequest) (*domain.Order, error)

	// DeleteOrder detaches the order from its person and user aggregates and
	// removes it.
	DeleteOrder(ctx context.Context, user *domain.User, orderID string) (*domain.Order, error)

	// ListOrders retrieves a filtered, sorted page of the user's orders.
	ListOrders(ctx context.Context, userID string, params dto.ListOrdersParams) ([]domain.Order, int, error)
}

// ReportingSvcFacade builds the grouped order reports.
type ReportingSvcFacade interface {
	// ReportByPerson groups the user's filtered orders per person with paid
	// sums, plus a global total paid over the whole filtered set.
	ReportByPerson(ctx context.Context, userID string, params dto.ReportParams) (*dto.ReportResponse, error)

	// GroupedByDate buckets the user's orders per calendar day and person
	// with pending subtotals and day totals.
	GroupedByDate(ctx context.Context, userID string, params dto.GroupedReportParams) (*dto.GroupedReportResponse, error)
}
