// Package inventory provides the PostgreSQL-backed repository for
// per-user inventory items.
package inventory

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

const columns = `id, user_id, name, current_stock, reorder_point, cost_price, selling_price,
	category, supplier, last_restock_date, notes, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the item. A name already used by the same user yields
// common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	query := `INSERT INTO inventory_items
		(id, user_id, name, current_stock, reorder_point, cost_price, selling_price,
		 category, supplier, last_restock_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + columns

	out := &models.InventoryItem{}
	err := r.db.GetContext(ctx, out, query,
		uuid.NewString(), item.UserID, item.Name, item.CurrentStock, item.ReorderPoint,
		item.CostPrice, item.SellingPrice, item.Category, item.Supplier, item.LastRestockDate, item.Notes)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.InventoryItem, error) {
	query := `SELECT ` + columns + ` FROM inventory_items WHERE user_id = $1 ORDER BY name`
	return r.selectItems(ctx, query, userID)
}

// ListLowStock returns items at or below their reorder point.
func (r *PostgresRepository) ListLowStock(ctx context.Context, userID string) ([]*models.InventoryItem, error) {
	query := `SELECT ` + columns + ` FROM inventory_items
		WHERE user_id = $1 AND current_stock <= reorder_point
		ORDER BY name`
	return r.selectItems(ctx, query, userID)
}

func (r *PostgresRepository) selectItems(ctx context.Context, query string, userID string) ([]*models.InventoryItem, error) {
	items := []*models.InventoryItem{}
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("failed to select inventory items: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.InventoryItem, error) {
	query := `SELECT ` + columns + ` FROM inventory_items WHERE id = $1 AND user_id = $2`
	return r.getOne(ctx, query, id, userID)
}

func (r *PostgresRepository) GetByNameForUpdate(ctx context.Context, userID, name string) (*models.InventoryItem, error) {
	query := `SELECT ` + columns + ` FROM inventory_items WHERE user_id = $1 AND name = $2 FOR UPDATE`
	return r.getOne(ctx, query, userID, name)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	if err := r.db.GetContext(ctx, item, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// Update applies the non-nil fields of in and returns the updated row.
func (r *PostgresRepository) Update(ctx context.Context, userID, id string, in *models.InventoryItemInput) (*models.InventoryItem, error) {
	query := `UPDATE inventory_items SET
			name = COALESCE($3, name),
			current_stock = COALESCE($4, current_stock),
			reorder_point = COALESCE($5, reorder_point),
			cost_price = COALESCE($6, cost_price),
			selling_price = COALESCE($7, selling_price),
			category = COALESCE($8, category),
			supplier = COALESCE($9, supplier),
			last_restock_date = COALESCE($10, last_restock_date),
			notes = COALESCE($11, notes),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + columns

	item := &models.InventoryItem{}
	err := r.db.GetContext(ctx, item, query, id, userID,
		in.Name, in.CurrentStock, in.ReorderPoint, in.CostPrice, in.SellingPrice,
		in.Category, in.Supplier, in.LastRestockDate.Ptr(), in.Notes)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrorNotFound
		case dbx.IsUniqueViolation(err):
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// AdjustStock adds delta to the item's current stock.
func (r *PostgresRepository) AdjustStock(ctx context.Context, userID, id string, delta int) error {
	query := `UPDATE inventory_items SET current_stock = current_stock + $3, updated_at = now()
		WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID, delta)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
