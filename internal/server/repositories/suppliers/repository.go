package suppliers

import (
	"context"

	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Supplier) (*models.Supplier, error)
	List(ctx context.Context, userID string) ([]*models.Supplier, error)
	Update(ctx context.Context, userID, id string, in *models.SupplierInput) (*models.Supplier, error)
	Delete(ctx context.Context, userID, id string) error
}
