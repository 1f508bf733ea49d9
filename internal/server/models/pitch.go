package models

import "time"

// PitchAnalysis is the stored result of analysing a recorded sales pitch.
// RecordingKey is empty when object storage is disabled.
type PitchAnalysis struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"userId"`
	Title        string    `db:"title" json:"title"`
	RecordingKey string    `db:"recording_key" json:"-"`
	Transcript   string    `db:"transcript" json:"transcript"`
	Analysis     RawJSON   `db:"analysis" json:"analysis"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
