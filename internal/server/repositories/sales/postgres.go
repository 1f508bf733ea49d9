// Package sales provides the PostgreSQL-backed sales ledger repository.
package sales

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

const columns = `id, user_id, product_name, quantity, amount, date, customer_name, payment_method,
	notes, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Sale) (*models.Sale, error) {
	query := `INSERT INTO sales
		(id, user_id, product_name, quantity, amount, date, customer_name, payment_method, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + columns

	out := &models.Sale{}
	err := r.db.GetContext(ctx, out, query,
		uuid.NewString(), s.UserID, s.ProductName, s.Quantity, s.Amount, s.Date,
		s.CustomerName, s.PaymentMethod, s.Notes)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, limit int) ([]*models.Sale, error) {
	query := `SELECT ` + columns + ` FROM sales WHERE user_id = $1 ORDER BY date DESC, created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	out := []*models.Sale{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select sales: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, in *models.SaleInput) (*models.Sale, error) {
	query := `UPDATE sales SET
			product_name = COALESCE($3, product_name),
			quantity = COALESCE($4, quantity),
			amount = COALESCE($5, amount),
			date = COALESCE($6, date),
			customer_name = COALESCE($7, customer_name),
			payment_method = COALESCE($8, payment_method),
			notes = COALESCE($9, notes),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + columns

	out := &models.Sale{}
	err := r.db.GetContext(ctx, out, query, id, userID,
		in.ProductName, in.Quantity, in.Amount, in.Date.Ptr(), in.CustomerName, in.PaymentMethod, in.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
