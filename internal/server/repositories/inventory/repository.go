package inventory

import (
	"context"

	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error)
	List(ctx context.Context, userID string) ([]*models.InventoryItem, error)
	ListLowStock(ctx context.Context, userID string) ([]*models.InventoryItem, error)
	Get(ctx context.Context, userID, id string) (*models.InventoryItem, error)
	// GetByNameForUpdate locks the named item for the rest of the transaction.
	GetByNameForUpdate(ctx context.Context, userID, name string) (*models.InventoryItem, error)
	Update(ctx context.Context, userID, id string, in *models.InventoryItemInput) (*models.InventoryItem, error)
	AdjustStock(ctx context.Context, userID, id string, delta int) error
	Delete(ctx context.Context, userID, id string) error
}
