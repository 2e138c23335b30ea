package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradeledger/trade_ledger_app/internal/apperrors"
	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portsrepo "github.com/tradeledger/trade_ledger_app/internal/core/ports/repositories"
	"github.com/tradeledger/trade_ledger_app/internal/models"
)

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new repository for order data.
func newPgxOrderRepository(pool *pgxpool.Pool) *PgxOrderRepository {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

func toModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:       d.OrderID,
		UserID:        d.UserID,
		PersonID:      d.PersonID,
		Type:          string(d.Type),
		Status:        string(d.Status),
		AmountPaid:    d.AmountPaid,
		AmountPending: d.AmountPending,
		TotalAmount:   d.TotalAmount,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:       m.OrderID,
		UserID:        m.UserID,
		PersonID:      m.PersonID,
		Type:          domain.OrderType(m.Type),
		Status:        domain.OrderStatus(m.Status),
		AmountPaid:    m.AmountPaid,
		AmountPending: m.AmountPending,
		TotalAmount:   m.TotalAmount,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const orderColumns = `order_id, user_id, person_id, type, status, amount_paid, amount_pending, total_amount, created_at, last_updated_at`

func scanOrder(row pgx.Row) (models.Order, error) {
	var m models.Order
	err := row.Scan(
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
	)
	return m, err
}

// applyBalanceDelta locks and updates the user and person aggregate rows
// inside the given transaction. The locks serialize concurrent
// reconciliations that touch the same user or person, closing the lost-update
// window of independent read-modify-write saves.
func applyBalanceDelta(ctx context.Context, tx pgx.Tx, userID string, delta domain.BalanceDelta) error {
	if !delta.Receivable.IsZero() || !delta.Payable.IsZero() {
		var locked string
		err := tx.QueryRow(ctx, `SELECT user_id FROM users WHERE user_id = $1 FOR UPDATE;`, userID).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
			}
			return fmt.Errorf("failed to lock user %s: %w", userID, err)
		}
		_, err = tx.Exec(ctx, `
			UPDATE users
			SET pending_receivable = pending_receivable + $2,
			    pending_payable = pending_payable + $3,
			    last_updated_at = now()
			WHERE user_id = $1;
		`, userID, delta.Receivable, delta.Payable)
		if err != nil {
			return fmt.Errorf("failed to update user aggregates: %w", err)
		}
	}

	// Deterministic person order avoids lock inversion between two
	// reconciliations moving an order in opposite directions.
	personIDs := make([]string, 0, len(delta.PersonOverdue))
	for id := range delta.PersonOverdue {
		if !delta.PersonOverdue[id].IsZero() {
			personIDs = append(personIDs, id)
		}
	}
	sort.Strings(personIDs)

	for _, personID := range personIDs {
		var locked string
		err := tx.QueryRow(ctx, `SELECT person_id FROM persons WHERE person_id = $1 FOR UPDATE;`, personID).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: person %s", apperrors.ErrNotFound, personID)
			}
			return fmt.Errorf("failed to lock person %s: %w", personID, err)
		}
		_, err = tx.Exec(ctx, `
			UPDATE persons
			SET total_overdue = total_overdue + $2, last_updated_at = now()
			WHERE person_id = $1;
		`, personID, delta.PersonOverdue[personID])
		if err != nil {
			return fmt.Errorf("failed to update person overdue: %w", err)
		}
	}
	return nil
}

func insertOrderItems(ctx context.Context, tx pgx.Tx, order domain.Order) error {
	if len(order.Items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i, line := range order.Items {
		batch.Queue(`
			INSERT INTO order_items (order_id, item_id, position, quantity, price, unit)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, order.OrderID, line.ItemID, i, line.Quantity, line.Price, string(line.Unit))
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range order.Items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}
	return nil
}

// SaveOrder inserts the order with its lines, adds the implicit inventory
// memberships, and applies the balance delta, all within one transaction.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order, inventoryID string, addItemIDs []string, delta domain.BalanceDelta) error {
	m := toModelOrder(order)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`,
		m.OrderID,
		m.UserID,
		m.PersonID,
		m.Type,
		m.Status,
		m.AmountPaid,
		m.AmountPending,
		m.TotalAmount,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order %s: %w", m.OrderID, err)
	}

	if err := insertOrderItems(ctx, tx, order); err != nil {
		return err
	}

	for _, itemID := range addItemIDs {
		_, err = tx.Exec(ctx, `
			INSERT INTO inventory_items (inventory_id, item_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING;
		`, inventoryID, itemID)
		if err != nil {
			return fmt.Errorf("failed to add item %s to inventory: %w", itemID, err)
		}
	}

	if err := applyBalanceDelta(ctx, tx, order.UserID, delta); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindOrderByID retrieves an order with its lines.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1;`, orderID)
	m, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %s", apperrors.ErrNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}

	order := toDomainOrder(m)
	linesByOrder, err := r.findOrderLines(ctx, []string{orderID})
	if err != nil {
		return nil, err
	}
	order.Items = linesByOrder[orderID]
	return &order, nil
}

// findOrderLines fetches lines for the given orders with item names resolved.
func (r *PgxOrderRepository) findOrderLines(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	result := make(map[string][]domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT oi.order_id, oi.item_id, i.name, oi.quantity, oi.price, oi.unit
		FROM order_items oi
		JOIN items i ON i.item_id = oi.item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.position;
	`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var line domain.OrderItem
		var unit string
		if err := rows.Scan(&orderID, &line.ItemID, &line.ItemName, &line.Quantity, &line.Price, &unit); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		line.Unit = domain.ItemUnit(unit)
		result[orderID] = append(result[orderID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order lines: %w", err)
	}
	return result, nil
}

// UpdateOrder replaces the order header and lines and applies the balance
// delta atomically.
func (r *PgxOrderRepository) UpdateOrder(ctx context.Context, order domain.Order, delta domain.BalanceDelta) error {
	m := toModelOrder(order)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE orders
		SET person_id = $2, type = $3, status = $4, amount_paid = $5,
		    amount_pending = $6, total_amount = $7, last_updated_at = $8
		WHERE order_id = $1;
	`, m.OrderID, m.PersonID, m.Type, m.Status, m.AmountPaid, m.AmountPending, m.TotalAmount, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", m.OrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, m.OrderID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1;`, m.OrderID); err != nil {
		return fmt.Errorf("failed to clear order lines for %s: %w", m.OrderID, err)
	}
	if err := insertOrderItems(ctx, tx, order); err != nil {
		return err
	}

	if err := applyBalanceDelta(ctx, tx, order.UserID, delta); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteOrder removes the order and its lines and applies the balance delta
// atomically.
func (r *PgxOrderRepository) DeleteOrder(ctx context.Context, order domain.Order, delta domain.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1;`, order.OrderID); err != nil {
		return fmt.Errorf("failed to delete order lines for %s: %w", order.OrderID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE order_id = $1;`, order.OrderID)
	if err != nil {
		return fmt.Errorf("failed to delete order %s: %w", order.OrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, order.OrderID)
	}

	if err := applyBalanceDelta(ctx, tx, order.UserID, delta); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// orderSortColumns whitelists sortable columns for order listings.
var orderSortColumns = map[string]string{
	"createdAt":     "o.created_at",
	"totalAmount":   "o.total_amount",
	"amountPaid":    "o.amount_paid",
	"amountPending": "o.amount_pending",
	"status":        "o.status",
	"type":          "o.type",
}

// ListOrders retrieves a page of matching orders with person and item names
// resolved for display, plus the total count.
func (r *PgxOrderRepository) ListOrders(ctx context.Context, filter portsrepo.OrderFilter) ([]domain.Order, int, error) {
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
	if filter.Type != "" {
		add(`o.type = $%d`, filter.Type)
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

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT count(*) FROM orders o `+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	sortCol, ok := orderSortColumns[filter.SortCol]
	if !ok {
		sortCol = "o.created_at"
	}
	dir := "ASC"
	if filter.SortDesc {
		dir = "DESC"
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s, p.name
		FROM orders o
		LEFT JOIN persons p ON p.person_id = o.person_id
		%s
		ORDER BY %s %s, o.order_id %s
		LIMIT $%d OFFSET $%d;
	`, qualifiedOrderColumns, where, sortCol, dir, dir, len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, filter.Limit)
	orderIDs := make([]string, 0, filter.Limit)
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
			return nil, 0, fmt.Errorf("failed to scan order row: %w", err)
		}
		order := toDomainOrder(m)
		if personName != nil {
			order.PersonName = *personName
		}
		orders = append(orders, order)
		orderIDs = append(orderIDs, order.OrderID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate order rows: %w", err)
	}

	linesByOrder, err := r.findOrderLines(ctx, orderIDs)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		orders[i].Items = linesByOrder[orders[i].OrderID]
	}
	return orders, total, nil
}

const qualifiedOrderColumns = `o.order_id, o.user_id, o.person_id, o.type, o.status, o.amount_paid, o.amount_pending, o.total_amount, o.created_at, o.last_updated_at`
