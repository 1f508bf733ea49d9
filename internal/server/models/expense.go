package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID            string          `db:"id" json:"id"`
	UserID        string          `db:"user_id" json:"userId"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Category      string          `db:"category" json:"category"`
	Description   string          `db:"description" json:"description"`
	PaymentMethod string          `db:"payment_method" json:"paymentMethod"`
	Date          time.Time       `db:"date" json:"date"`
	Notes         string          `db:"notes" json:"notes"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

type ExpenseInput struct {
	Amount        *decimal.Decimal `json:"amount"`
	Category      *string          `json:"category"`
	Description   *string          `json:"description"`
	PaymentMethod *string          `json:"paymentMethod"`
	Date          *FlexibleTime    `json:"date"`
	Notes         *string          `json:"notes"`
}
