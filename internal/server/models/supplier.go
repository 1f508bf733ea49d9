package models

import "time"

// Supplier is a vendor the business buys from. Name is unique per user.
type Supplier struct {
	ID               string     `db:"id" json:"id"`
	UserID           string     `db:"user_id" json:"userId"`
	Name             string     `db:"name" json:"name"`
	ContactPerson    string     `db:"contact_person" json:"contactPerson"`
	Phone            string     `db:"phone" json:"phone"`
	Email            string     `db:"email" json:"email"`
	Address          string     `db:"address" json:"address"`
	ProductsSupplied StringList `db:"products_supplied" json:"productsSupplied"`
	PaymentTerms     string     `db:"payment_terms" json:"paymentTerms"`
	Notes            string     `db:"notes" json:"notes"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}

type SupplierInput struct {
	Name             *string   `json:"name"`
	ContactPerson    *string   `json:"contactPerson"`
	Phone            *string   `json:"phone"`
	Email            *string   `json:"email"`
	Address          *string   `json:"address"`
	ProductsSupplied *[]string `json:"productsSupplied"`
	PaymentTerms     *string   `json:"paymentTerms"`
	Notes            *string   `json:"notes"`
}
