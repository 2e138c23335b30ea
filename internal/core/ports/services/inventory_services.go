package services

import (
	"context"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
)

// InventorySvcFacade defines item CRUD scoped to a user's inventory.
type InventorySvcFacade interface {
	// GetInventory resolves the inventory with all items expanded.
	GetInventory(ctx context.Context, inventoryID string) (*domain.Inventory, error)

	// GetCategories extracts the distinct normalized category labels.
	GetCategories(ctx context.Context, inventoryID string) ([]string, error)

	// GetItemsByCategory groups the inventory's items under each normalized
	// category label.
	GetItemsByCategory(ctx context.Context, inventoryID string) (map[string][]domain.Item, error)

	// AddItem creates an item, attaches the optional image reference and adds
	// it to the inventory.
	AddItem(ctx context.Context, inventoryID string, req dto.AddItemRequest, imageID *string) (*domain.Item, error)

	// UpdateItem replaces item fields; a new image replaces and deletes the
	// previously stored one.
	UpdateItem(ctx context.Context, itemID string, req dto.UpdateItemRequest, imageID *string) (*domain.Item, error)

	// RemoveItem removes the item from the inventory's item set. The item
	// record itself is retained.
	RemoveItem(ctx context.Context, inventoryID, itemID string) error
}

// ImageSvcFacade is the blob storage collaborator: image-only uploads with a
// size ceiling, streamed retrieval and deletion by ID.
type ImageSvcFacade interface {
	// Store validates and persists an uploaded image, returning its ID.
	Store(ctx context.Context, fileName, contentType string, data []byte) (string, error)

	// Get retrieves a stored image.
	Get(ctx context.Context, imageID string) (*domain.Image, error)

	// Delete removes a stored image.
	Delete(ctx context.Context, imageID string) error
}
