package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a buyer tracked by the business. Name is unique per user.
type Customer struct {
	ID               string          `db:"id" json:"id"`
	UserID           string          `db:"user_id" json:"userId"`
	Name             string          `db:"name" json:"name"`
	Phone            string          `db:"phone" json:"phone"`
	Email            string          `db:"email" json:"email"`
	Address          string          `db:"address" json:"address"`
	TotalPurchases   decimal.Decimal `db:"total_purchases" json:"totalPurchases"`
	LastPurchaseDate *time.Time      `db:"last_purchase_date" json:"lastPurchaseDate"`
	Notes            string          `db:"notes" json:"notes"`
	CreatedAt        time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updatedAt"`
}

type CustomerInput struct {
	Name             *string          `json:"name"`
	Phone            *string          `json:"phone"`
	Email            *string          `json:"email"`
	Address          *string          `json:"address"`
	TotalPurchases   *decimal.Decimal `json:"totalPurchases"`
	LastPurchaseDate *FlexibleTime    `json:"lastPurchaseDate"`
	Notes            *string          `json:"notes"`
}
