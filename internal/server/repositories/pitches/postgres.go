// Package pitches stores pitch analyses produced by the AI pitch coach.
package pitches

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

const columns = `id, user_id, title, recording_key, transcript, analysis, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.PitchAnalysis) (*models.PitchAnalysis, error) {
	query := `INSERT INTO pitch_analyses (id, user_id, title, recording_key, transcript, analysis)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + columns

	out := &models.PitchAnalysis{}
	err := r.db.GetContext(ctx, out, query,
		uuid.NewString(), p.UserID, p.Title, p.RecordingKey, p.Transcript, p.Analysis)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.PitchAnalysis, error) {
	out := []*models.PitchAnalysis{}
	query := `SELECT ` + columns + ` FROM pitch_analyses WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &out, query, userID); err != nil {
		return nil, fmt.Errorf("failed to select pitch analyses: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) (string, error) {
	var key string
	err := r.db.GetContext(ctx, &key,
		`DELETE FROM pitch_analyses WHERE id = $1 AND user_id = $2 RETURNING recording_key`, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return key, nil
}
