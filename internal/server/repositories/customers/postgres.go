// Package customers provides the PostgreSQL-backed customer repository.
package customers

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

const columns = `id, user_id, name, phone, email, address, total_purchases, last_purchase_date,
	notes, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	query := `INSERT INTO customers
		(id, user_id, name, phone, email, address, total_purchases, last_purchase_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + columns

	out := &models.Customer{}
	err := r.db.GetContext(ctx, out, query,
		uuid.NewString(), c.UserID, c.Name, c.Phone, c.Email, c.Address,
		c.TotalPurchases, c.LastPurchaseDate, c.Notes)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Customer, error) {
	out := []*models.Customer{}
	query := `SELECT ` + columns + ` FROM customers WHERE user_id = $1 ORDER BY name`
	if err := r.db.SelectContext(ctx, &out, query, userID); err != nil {
		return nil, fmt.Errorf("failed to select customers: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, in *models.CustomerInput) (*models.Customer, error) {
	query := `UPDATE customers SET
			name = COALESCE($3, name),
			phone = COALESCE($4, phone),
			email = COALESCE($5, email),
			address = COALESCE($6, address),
			total_purchases = COALESCE($7, total_purchases),
			last_purchase_date = COALESCE($8, last_purchase_date),
			notes = COALESCE($9, notes),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + columns

	out := &models.Customer{}
	err := r.db.GetContext(ctx, out, query, id, userID,
		in.Name, in.Phone, in.Email, in.Address, in.TotalPurchases, in.LastPurchaseDate.Ptr(), in.Notes)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
