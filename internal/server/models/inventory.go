package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked product. Name is unique per user.
type InventoryItem struct {
	ID              string          `db:"id" json:"id"`
	UserID          string          `db:"user_id" json:"userId"`
	Name            string          `db:"name" json:"name"`
	CurrentStock    int             `db:"current_stock" json:"currentStock"`
	ReorderPoint    int             `db:"reorder_point" json:"reorderPoint"`
	CostPrice       decimal.Decimal `db:"cost_price" json:"costPrice"`
	SellingPrice    decimal.Decimal `db:"selling_price" json:"sellingPrice"`
	Category        string          `db:"category" json:"category"`
	Supplier        string          `db:"supplier" json:"supplier"`
	LastRestockDate *time.Time      `db:"last_restock_date" json:"lastRestockDate"`
	Notes           string          `db:"notes" json:"notes"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updatedAt"`
}

// LowOnStock reports whether the item has reached its reorder point.
func (i *InventoryItem) LowOnStock() bool {
	return i.CurrentStock <= i.ReorderPoint
}

// InventoryItemInput creates or patches an item; nil fields are "not provided".
type InventoryItemInput struct {
	Name            *string          `json:"name"`
	CurrentStock    *int             `json:"currentStock"`
	ReorderPoint    *int             `json:"reorderPoint"`
	CostPrice       *decimal.Decimal `json:"costPrice"`
	SellingPrice    *decimal.Decimal `json:"sellingPrice"`
	Category        *string          `json:"category"`
	Supplier        *string          `json:"supplier"`
	LastRestockDate *FlexibleTime    `json:"lastRestockDate"`
	Notes           *string          `json:"notes"`
}
