package pitches

import (
	"context"

	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.PitchAnalysis) (*models.PitchAnalysis, error)
	List(ctx context.Context, userID string) ([]*models.PitchAnalysis, error)
	// Delete removes the analysis and returns its recording key.
	Delete(ctx context.Context, userID, id string) (string, error)
}
