package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/dmitrijs2005/pitchpoa/internal/logging"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pitchpoa/internal/server/storage"
	"github.com/jmoiron/sqlx"
)

// Transcriber turns recorded speech into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, contentType string) (string, error)
	// Simulated reports whether the transcript is a placeholder rather
	// than derived from the audio.
	Simulated() bool
}

// SimulatedTranscriber returns a fixed sample pitch. No speech-to-text
// backend is wired yet, and responses say so via transcriptionSimulated.
type SimulatedTranscriber struct{}

const sampleTranscript = `Hi, I'm calling from PitchPoa Supplies. We help small shops keep their shelves stocked ` +
	`without tying up cash. Our customers cut stock-outs by a third in the first month. ` +
	`We deliver twice a week and you only pay for what you sell. ` +
	`Could we set up a short visit on Thursday to show you how it works?`

func (SimulatedTranscriber) Transcribe(ctx context.Context, audio io.Reader, contentType string) (string, error) {
	return sampleTranscript, nil
}

func (SimulatedTranscriber) Simulated() bool { return true }

// RecordingStore keeps uploaded recordings.
type RecordingStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PresignGet(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// PitchUpload is one recorded pitch submitted for analysis.
type PitchUpload struct {
	Title       string
	Filename    string
	ContentType string
	Size        int64
	Audio       io.ReadSeeker
}

// PitchResult is an analysis as returned to the client.
type PitchResult struct {
	ID                     string         `json:"id"`
	Title                  string         `json:"title"`
	Transcript             string         `json:"transcript"`
	TranscriptionSimulated bool           `json:"transcriptionSimulated"`
	RecordingURL           string         `json:"recordingUrl"`
	Analysis               models.RawJSON `json:"analysis"`
	CreatedAt              time.Time      `json:"createdAt"`
}

type PitchService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
	generator   Generator
	observer    AIObserver
	transcriber Transcriber
	store       RecordingStore // nil when object storage is disabled
	logger      logging.Logger
	now         func() time.Time
}

func NewPitchService(db *sqlx.DB, m repomanager.RepositoryManager, g Generator, o AIObserver,
	t Transcriber, store RecordingStore, logger logging.Logger) *PitchService {
	return &PitchService{
		db: db, repomanager: m, generator: g, observer: o,
		transcriber: t, store: store, logger: logger, now: time.Now,
	}
}

func acceptedAudio(contentType string) bool {
	ct := strings.ToLower(contentType)
	return ct == "" || ct == "application/octet-stream" ||
		strings.HasPrefix(ct, "audio/") || strings.HasPrefix(ct, "video/")
}

// Analyze stores the recording, transcribes it, asks the generator for
// coaching feedback and persists the result.
//
// A recording stored before a later step fails is removed again, best effort.
func (s *PitchService) Analyze(ctx context.Context, userID string, up *PitchUpload) (_ *PitchResult, err error) {
	if up == nil || up.Audio == nil || up.Size == 0 {
		return nil, common.NewValidationError("Audio file is required")
	}
	if !acceptedAudio(up.ContentType) {
		return nil, common.NewValidationError("Uploaded file must be an audio recording")
	}
	title := strings.TrimSpace(up.Title)

	var key string
	if s.store != nil {
		key = storage.RecordingKey(userID, filepath.Ext(up.Filename), s.now().UTC())
		if err := s.store.Put(ctx, key, up.ContentType, up.Audio, up.Size); err != nil {
			return nil, fmt.Errorf("error storing recording: %w", err)
		}
		defer func() {
			if err != nil {
				s.discardRecording(ctx, key)
			}
		}()
		if _, err := up.Audio.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("error rewinding recording: %w", err)
		}
	}

	transcript, err := s.transcriber.Transcribe(ctx, up.Audio, up.ContentType)
	if err != nil {
		return nil, fmt.Errorf("error transcribing recording: %w", err)
	}

	data := struct{ Title, Transcript string }{title, transcript}
	analysis, err := generate(ctx, s.generator, s.observer, FeaturePitchAnalysis, pitchAnalysisPrompt, data, pitchAnalysisSchema)
	if err != nil {
		return nil, err
	}

	saved, err := s.repomanager.Pitches(s.db).Create(ctx, &models.PitchAnalysis{
		UserID:       userID,
		Title:        title,
		RecordingKey: key,
		Transcript:   transcript,
		Analysis:     models.RawJSON(analysis),
	})
	if err != nil {
		return nil, fmt.Errorf("error saving pitch analysis: %w", err)
	}
	return s.result(ctx, saved), nil
}

// List returns the user's analyses, newest first.
func (s *PitchService) List(ctx context.Context, userID string) ([]*PitchResult, error) {
	saved, err := s.repomanager.Pitches(s.db).List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*PitchResult, 0, len(saved))
	for _, p := range saved {
		out = append(out, s.result(ctx, p))
	}
	return out, nil
}

// Delete removes the analysis and, best effort, its recording.
func (s *PitchService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}
	key, err := s.repomanager.Pitches(s.db).Delete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error deleting pitch analysis: %w", err)
	}
	if key != "" && s.store != nil {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn(ctx, "recording left behind", "key", key, "error", err)
		}
	}
	return nil
}

func (s *PitchService) discardRecording(ctx context.Context, key string) {
	ctx = context.WithoutCancel(ctx)
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn(ctx, "recording left behind", "key", key, "error", err)
	}
}

func (s *PitchService) result(ctx context.Context, p *models.PitchAnalysis) *PitchResult {
	r := &PitchResult{
		ID:                     p.ID,
		Title:                  p.Title,
		Transcript:             p.Transcript,
		TranscriptionSimulated: s.transcriber.Simulated(),
		Analysis:               p.Analysis,
		CreatedAt:              p.CreatedAt,
	}
	if p.RecordingKey != "" && s.store != nil {
		url, err := s.store.PresignGet(ctx, p.RecordingKey)
		if err != nil {
			s.logger.Warn(ctx, "cannot presign recording", "key", p.RecordingKey, "error", err)
		} else {
			r.RecordingURL = url
		}
	}
	return r
}
