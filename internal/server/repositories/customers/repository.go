package customers

import (
	"context"

	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Customer) (*models.Customer, error)
	List(ctx context.Context, userID string) ([]*models.Customer, error)
	Update(ctx context.Context, userID, id string, in *models.CustomerInput) (*models.Customer, error)
	Delete(ctx context.Context, userID, id string) error
}
