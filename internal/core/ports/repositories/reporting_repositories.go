package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
)

// ReportFilter narrows the order set feeding the report aggregations.
// PersonType filters on the counterparty's type (grouped-by-date report);
// OrderType and Status filter on the orders themselves.
type ReportFilter struct {
	UserID     string
	PersonID   string
	Status     string
	OrderType  string
	PersonType string
	StartDate  *time.Time
	EndDate    *time.Time
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
}

// ReportingRepositoryFacade supplies the raw rows for the report engines.
type ReportingRepositoryFacade interface {
	// FindOrdersForReport retrieves every order matching the filter, oldest
	// first, with lines attached. Grouping happens in the service layer.
	FindOrdersForReport(ctx context.Context, filter ReportFilter) ([]domain.Order, error)
}
