package dto

import (
	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
)

// AddItemRequest defines the data for adding an item to an inventory.
// Sent as multipart form fields alongside an optional image file.
type AddItemRequest struct {
	Name        string `form:"name" binding:"required"`
	Category    string `form:"category"`
	Description string `form:"description"`
}

// UpdateItemRequest defines the data allowed for updating an item.
type UpdateItemRequest struct {
	Name        *string `form:"name"`
	Category    *string `form:"category"`
	Description *string `form:"description"`
}

// ItemResponse is the API representation of an item.
type ItemResponse struct {
	ItemID      string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageID     *string `json:"imageID,omitempty"`
}

// ToItemResponse converts a domain.Item to its API representation.
func ToItemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ItemID:      item.ItemID,
		Name:        item.Name,
		Category:    item.Category,
		Description: item.Description,
		ImageID:     item.ImageID,
	}
}

// InventoryResponse is the API representation of an inventory with its items
// expanded.
type InventoryResponse struct {
	InventoryID string         `json:"id"`
	Items       []ItemResponse `json:"items"`
}

// ToInventoryResponse converts a domain.Inventory to its API representation.
func ToInventoryResponse(inv *domain.Inventory) InventoryResponse {
	items := make([]ItemResponse, len(inv.Items))
	for i := range inv.Items {
		items[i] = ToItemResponse(&inv.Items[i])
	}
	return InventoryResponse{
		InventoryID: inv.InventoryID,
		Items:       items,
	}
}

// CategoriesResponse lists the distinct normalized category labels of an
// inventory.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ItemsByCategoryResponse groups an inventory's items by normalized category.
type ItemsByCategoryResponse struct {
	Categories map[string][]ItemResponse `json:"categories"`
}
