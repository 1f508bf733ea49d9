package expenses

import (
	"context"

	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.Expense) (*models.Expense, error)
	// List returns expenses newest first; limit <= 0 means no limit.
	List(ctx context.Context, userID string, limit int) ([]*models.Expense, error)
	Update(ctx context.Context, userID, id string, in *models.ExpenseInput) (*models.Expense, error)
	Delete(ctx context.Context, userID, id string) error
}
