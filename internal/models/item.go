package models

import "database/sql"

// Item is the database row for a catalog item.
type Item struct {
	ItemID      string         `db:"item_id"`
	Name        string         `db:"name"`
	Category    sql.NullString `db:"category"`
	Description sql.NullString `db:"description"`
	ImageID     sql.NullString `db:"image_id"`
}

// Inventory is the database row for a user's inventory. Item membership lives
// in the inventory_items join table.
type Inventory struct {
	InventoryID string `db:"inventory_id"`
	UserID      string `db:"user_id"`
}
