package repositories

import (
	"context"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
)

// InventoryRepositoryFacade defines persistence for inventories and items.
// Inventory membership is a join table, queried at access time instead of a
// mutable embedded array.
type InventoryRepositoryFacade interface {
	// FindInventoryByID retrieves an inventory with its items expanded.
	FindInventoryByID(ctx context.Context, inventoryID string) (*domain.Inventory, error)

	// FindInventoryByUserID retrieves the user's inventory with items expanded.
	FindInventoryByUserID(ctx context.Context, userID string) (*domain.Inventory, error)

	// FindItemByID retrieves a catalog item.
	FindItemByID(ctx context.Context, itemID string) (*domain.Item, error)

	// FindItemsByIDs retrieves several catalog items keyed by ID.
	FindItemsByIDs(ctx context.Context, itemIDs []string) (map[string]domain.Item, error)

	// MembershipSet reports which of the given item IDs are members of the
	// inventory.
	MembershipSet(ctx context.Context, inventoryID string, itemIDs []string) (map[string]bool, error)

	// AddItem inserts a new catalog item and its membership row atomically.
	AddItem(ctx context.Context, inventoryID string, item domain.Item) error

	// UpdateItem persists mutable item fields including the image reference.
	UpdateItem(ctx context.Context, item domain.Item) error

	// RemoveItem removes the membership row only; the item row is retained.
	RemoveItem(ctx context.Context, inventoryID, itemID string) error
}
