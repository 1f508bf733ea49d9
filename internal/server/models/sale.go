package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID            string          `db:"id" json:"id"`
	UserID        string          `db:"user_id" json:"userId"`
	ProductName   string          `db:"product_name" json:"productName"`
	Quantity      int             `db:"quantity" json:"quantity"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Date          time.Time       `db:"date" json:"date"`
	CustomerName  string          `db:"customer_name" json:"customerName"`
	PaymentMethod string          `db:"payment_method" json:"paymentMethod"`
	Notes         string          `db:"notes" json:"notes"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

type SaleInput struct {
	ProductName   *string          `json:"productName"`
	Quantity      *int             `json:"quantity"`
	Amount        *decimal.Decimal `json:"amount"`
	Date          *FlexibleTime    `json:"date"`
	CustomerName  *string          `json:"customerName"`
	PaymentMethod *string          `json:"paymentMethod"`
	Notes         *string          `json:"notes"`
}
