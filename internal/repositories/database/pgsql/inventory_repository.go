package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradeledger/trade_ledger_app/internal/apperrors"
	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portsrepo "github.com/tradeledger/trade_ledger_app/internal/core/ports/repositories"
	"github.com/tradeledger/trade_ledger_app/internal/models"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for inventory data.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

func toModelItem(d domain.Item) models.Item {
	return models.Item{
		ItemID:      d.ItemID,
		Name:        d.Name,
		Category:    nullString(d.Category),
		Description: nullString(d.Description),
		ImageID:     nullStringPtr(d.ImageID),
	}
}

func toDomainItem(m models.Item) domain.Item {
	return domain.Item{
		ItemID:      m.ItemID,
		Name:        m.Name,
		Category:    m.Category.String,
		Description: m.Description.String,
		ImageID:     ptrFromNull(m.ImageID),
	}
}

const itemColumns = `item_id, name, category, description, image_id`

func scanItem(row pgx.Row) (models.Item, error) {
	var m models.Item
	err := row.Scan(&m.ItemID, &m.Name, &m.Category, &m.Description, &m.ImageID)
	return m, err
}

func (r *PgxInventoryRepository) findInventoryItems(ctx context.Context, inventoryID string) ([]domain.Item, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT i.item_id, i.name, i.category, i.description, i.image_id
		FROM inventory_items ii
		JOIN items i ON i.item_id = ii.item_id
		WHERE ii.inventory_id = $1
		ORDER BY i.name ASC, i.item_id ASC;
	`, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, toDomainItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item rows: %w", err)
	}
	return items, nil
}

// FindInventoryByID retrieves an inventory with its items expanded.
func (r *PgxInventoryRepository) FindInventoryByID(ctx context.Context, inventoryID string) (*domain.Inventory, error) {
	var m models.Inventory
	err := r.Pool.QueryRow(ctx, `SELECT inventory_id, user_id FROM inventories WHERE inventory_id = $1;`, inventoryID).
		Scan(&m.InventoryID, &m.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: inventory %s", apperrors.ErrNotFound, inventoryID)
		}
		return nil, fmt.Errorf("failed to find inventory %s: %w", inventoryID, err)
	}
	return r.expandInventory(ctx, m)
}

// FindInventoryByUserID retrieves the user's inventory with items expanded.
func (r *PgxInventoryRepository) FindInventoryByUserID(ctx context.Context, userID string) (*domain.Inventory, error) {
	var m models.Inventory
	err := r.Pool.QueryRow(ctx, `SELECT inventory_id, user_id FROM inventories WHERE user_id = $1;`, userID).
		Scan(&m.InventoryID, &m.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: inventory for user %s", apperrors.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to find inventory for user %s: %w", userID, err)
	}
	return r.expandInventory(ctx, m)
}

func (r *PgxInventoryRepository) expandInventory(ctx context.Context, m models.Inventory) (*domain.Inventory, error) {
	items, err := r.findInventoryItems(ctx, m.InventoryID)
	if err != nil {
		return nil, err
	}
	return &domain.Inventory{
		InventoryID: m.InventoryID,
		UserID:      m.UserID,
		Items:       items,
	}, nil
}

// FindItemByID retrieves a catalog item.
func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	m, err := scanItem(r.Pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE item_id = $1;`, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: item %s", apperrors.ErrNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to find item %s: %w", itemID, err)
	}
	item := toDomainItem(m)
	return &item, nil
}

// FindItemsByIDs retrieves several catalog items keyed by ID.
func (r *PgxInventoryRepository) FindItemsByIDs(ctx context.Context, itemIDs []string) (map[string]domain.Item, error) {
	result := make(map[string]domain.Item, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT `+itemColumns+` FROM items WHERE item_id = ANY($1);`, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query items by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		result[m.ItemID] = toDomainItem(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item rows: %w", err)
	}
	return result, nil
}

// MembershipSet reports which of the given item IDs belong to the inventory.
func (r *PgxInventoryRepository) MembershipSet(ctx context.Context, inventoryID string, itemIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT item_id FROM inventory_items
		WHERE inventory_id = $1 AND item_id = ANY($2);
	`, inventoryID, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory membership: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID string
		if err := rows.Scan(&itemID); err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		result[itemID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate membership rows: %w", err)
	}
	return result, nil
}

// AddItem inserts the catalog item and its membership row atomically.
func (r *PgxInventoryRepository) AddItem(ctx context.Context, inventoryID string, item domain.Item) error {
	m := toModelItem(item)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5);
	`, m.ItemID, m.Name, m.Category, m.Description, m.ImageID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: item %s", apperrors.ErrDuplicate, m.ItemID)
		}
		return fmt.Errorf("failed to insert item %s: %w", m.ItemID, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO inventory_items (inventory_id, item_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING;
	`, inventoryID, m.ItemID)
	if err != nil {
		return fmt.Errorf("failed to add item %s to inventory %s: %w", m.ItemID, inventoryID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateItem persists mutable item fields including the image reference.
func (r *PgxInventoryRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	m := toModelItem(item)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE items
		SET name = $2, category = $3, description = $4, image_id = $5
		WHERE item_id = $1;
	`, m.ItemID, m.Name, m.Category, m.Description, m.ImageID)
	if err != nil {
		return fmt.Errorf("failed to update item %s: %w", m.ItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", apperrors.ErrNotFound, m.ItemID)
	}
	return nil
}

// RemoveItem removes the membership row; the item row stays for order history.
func (r *PgxInventoryRepository) RemoveItem(ctx context.Context, inventoryID, itemID string) error {
	tag, err := r.Pool.Exec(ctx, `
		DELETE FROM inventory_items WHERE inventory_id = $1 AND item_id = $2;
	`, inventoryID, itemID)
	if err != nil {
		return fmt.Errorf("failed to remove item %s from inventory %s: %w", itemID, inventoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s in inventory %s", apperrors.ErrNotFound, itemID, inventoryID)
	}
	return nil
}
