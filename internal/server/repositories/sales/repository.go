package sales

import (
	"context"

	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Sale) (*models.Sale, error)
	// List returns sales newest first; limit <= 0 means no limit.
	List(ctx context.Context, userID string, limit int) ([]*models.Sale, error)
	Update(ctx context.Context, userID, id string, in *models.SaleInput) (*models.Sale, error)
	Delete(ctx context.Context, userID, id string) error
}
