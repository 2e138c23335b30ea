package domain

import "strings"

// Item is a catalog entry shared by reference between inventories and
// order line items.
type Item struct {
	ItemID      string  `json:"itemID"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageID     *string `json:"imageID,omitempty"`
}

// NormalizeCategory folds a category label for grouping and distinct-set
// extraction. Empty labels stay empty and are skipped by callers.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// Inventory is the one-to-one item set of a user. Items carries the expanded
// item records when the inventory is resolved for display.
type Inventory struct {
	InventoryID string `json:"inventoryID"`
	UserID      string `json:"userID"`
	Items       []Item `json:"items"`
}
