package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portsrepo "github.com/tradeledger/trade_ledger_app/internal/core/ports/repositories"
	"github.com/tradeledger/trade_ledger_app/internal/models"
)

type PgxReportingRepository struct {
	BaseRepository
	orders *PgxOrderRepository
}

// newPgxReportingRepository creates a new repository for report queries.
// It shares the order repository's line loader.
func newPgxReportingRepository(pool *pgxpool.Pool, orders *PgxOrderRepository) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
		orders:         orders,
	}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// FindOrdersForReport retrieves every order matching the filter, oldest first,
// with person names and lines resolved. Grouping stays in the service layer.
func (r *PgxReportingRepository) FindOrdersForReport(ctx context.Context, filter portsrepo.ReportFilter) ([]domain.Order, error) {
	where := `WHERE o.user_id = $1`
	args := []any{filter.UserID}
	add := func(clause string, value any) {
		args = append(args, value)
		where += fmt.Sprintf(` AND `+clause, len(args))
	}
	if filter.PersonID != "" {
		add(`o.person_id = $%d`, filter.PersonID)
	}
	if filter.Status != "" {
		add(`o.status = $%d`, filter.Status)
	}
	if filter.OrderType != "" {
		add(`o.type = $%d`, filter.OrderType)
	}
	if filter.PersonType != "" {
		add(`p.type = $%d`, filter.PersonType)
	}
	if filter.StartDate != nil {
		add(`o.created_at >= $%d`, *filter.StartDate)
	}
	if filter.EndDate != nil {
		add(`o.created_at <= $%d`, *filter.EndDate)
	}
	if filter.MinAmount != nil {
		add(`o.total_amount >= $%d`, *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		add(`o.total_amount <= $%d`, *filter.MaxAmount)
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT `+qualifiedOrderColumns+`, p.name
		FROM orders o
		LEFT JOIN persons p ON p.person_id = o.person_id
		`+where+`
		ORDER BY o.created_at ASC, o.order_id ASC;
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query report orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	var orderIDs []string
	for rows.Next() {
		var m models.Order
		var personName *string
		err := rows.Scan(
			&m.OrderID,
			&m.UserID,
			&m.PersonID,
			&m.Type,
			&m.Status,
			&m.AmountPaid,
			&m.AmountPending,
			&m.TotalAmount,
			&m.CreatedAt,
			&m.LastUpdatedAt,
			&personName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report order: %w", err)
		}
		order := toDomainOrder(m)
		if personName != nil {
			order.PersonName = *personName
		}
		orders = append(orders, order)
		orderIDs = append(orderIDs, order.OrderID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report orders: %w", err)
	}

	linesByOrder, err := r.orders.findOrderLines(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = linesByOrder[orders[i].OrderID]
	}
	return orders, nil
}
