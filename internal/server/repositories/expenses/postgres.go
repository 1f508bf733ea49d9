// Package expenses provides the PostgreSQL-backed expense ledger repository.
package expenses

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

const columns = `id, user_id, amount, category, description, payment_method, date, notes,
	created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	query := `INSERT INTO expenses
		(id, user_id, amount, category, description, payment_method, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + columns

	out := &models.Expense{}
	err := r.db.GetContext(ctx, out, query,
		uuid.NewString(), e.UserID, e.Amount, e.Category, e.Description, e.PaymentMethod, e.Date, e.Notes)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, limit int) ([]*models.Expense, error) {
	query := `SELECT ` + columns + ` FROM expenses WHERE user_id = $1 ORDER BY date DESC, created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	out := []*models.Expense{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select expenses: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, in *models.ExpenseInput) (*models.Expense, error) {
	query := `UPDATE expenses SET
			amount = COALESCE($3, amount),
			category = COALESCE($4, category),
			description = COALESCE($5, description),
			payment_method = COALESCE($6, payment_method),
			date = COALESCE($7, date),
			notes = COALESCE($8, notes),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + columns

	out := &models.Expense{}
	err := r.db.GetContext(ctx, out, query, id, userID,
		in.Amount, in.Category, in.Description, in.PaymentMethod, in.Date.Ptr(), in.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
