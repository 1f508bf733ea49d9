// Package suppliers provides the PostgreSQL-backed supplier repository.
package suppliers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/dmitrijs2005/pitchpoa/internal/dbx"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/google/uuid"
)

const columns = `id, user_id, name, contact_person, phone, email, address, products_supplied,
	payment_terms, notes, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Supplier) (*models.Supplier, error) {
	query := `INSERT INTO suppliers
		(id, user_id, name, contact_person, phone, email, address, products_supplied, payment_terms, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + columns

	out := &models.Supplier{}
	err := r.db.GetContext(ctx, out, query,
		uuid.NewString(), s.UserID, s.Name, s.ContactPerson, s.Phone, s.Email, s.Address,
		s.ProductsSupplied, s.PaymentTerms, s.Notes)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Supplier, error) {
	out := []*models.Supplier{}
	query := `SELECT ` + columns + ` FROM suppliers WHERE user_id = $1 ORDER BY name`
	if err := r.db.SelectContext(ctx, &out, query, userID); err != nil {
		return nil, fmt.Errorf("failed to select suppliers: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, in *models.SupplierInput) (*models.Supplier, error) {
	query := `UPDATE suppliers SET
			name = COALESCE($3, name),
			contact_person = COALESCE($4, contact_person),
			phone = COALESCE($5, phone),
			email = COALESCE($6, email),
			address = COALESCE($7, address),
			products_supplied = COALESCE($8, products_supplied),
			payment_terms = COALESCE($9, payment_terms),
			notes = COALESCE($10, notes),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + columns

	var products any
	if in.ProductsSupplied != nil {
		products = models.StringList(*in.ProductsSupplied)
	}

	out := &models.Supplier{}
	err := r.db.GetContext(ctx, out, query, id, userID,
		in.Name, in.ContactPerson, in.Phone, in.Email, in.Address, products, in.PaymentTerms, in.Notes)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrorNotFound
		case dbx.IsUniqueViolation(err):
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
