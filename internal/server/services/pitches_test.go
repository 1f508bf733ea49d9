package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/dmitrijs2005/pitchpoa/internal/logging"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecordings struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func (r *fakeRecordings) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	if r.putErr != nil {
		return r.putErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.objects[key] = b
	return nil
}

func (r *fakeRecordings) PresignGet(ctx context.Context, key string) (string, error) {
	return "https://storage.example/" + key + "?sig=1", nil
}

func (r *fakeRecordings) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.objects, key)
	return nil
}

// readingTranscriber fails unless the audio is readable from the start.
type readingTranscriber struct{ want string }

func (tr readingTranscriber) Transcribe(ctx context.Context, audio io.Reader, contentType string) (string, error) {
	b, err := io.ReadAll(audio)
	if err != nil {
		return "", err
	}
	if string(b) != tr.want {
		return "", errors.New("audio not rewound")
	}
	return "we sell fresh bread", nil
}

func (readingTranscriber) Simulated() bool { return false }

func upload(body string) *PitchUpload {
	return &PitchUpload{
		Title:       " Bakery pitch ",
		Filename:    "pitch.WEBM",
		ContentType: "audio/webm",
		Size:        int64(len(body)),
		Audio:       bytes.NewReader([]byte(body)),
	}
}

func TestPitchService_AnalyzeStoresAndPersists(t *testing.T) {
	store := memory.NewStore()
	rec := &fakeRecordings{objects: map[string][]byte{}}
	gen := &fakeGenerator{reply: json.RawMessage(`{"overallScore":7,"summary":"good"}`)}
	svc := NewPitchService(nil, memory.NewManager(store), gen, nil,
		readingTranscriber{want: "RIFF"}, rec, logging.Nop())

	res, err := svc.Analyze(context.Background(), userA, upload("RIFF"))
	require.NoError(t, err)

	assert.Equal(t, "Bakery pitch", res.Title)
	assert.Equal(t, "we sell fresh bread", res.Transcript)
	assert.False(t, res.TranscriptionSimulated)
	assert.JSONEq(t, `{"overallScore":7,"summary":"good"}`, string(res.Analysis))
	require.Len(t, rec.objects, 1)
	for key, b := range rec.objects {
		assert.True(t, strings.HasPrefix(key, "recordings/"+userA+"/"), key)
		assert.True(t, strings.HasSuffix(key, ".webm"), key)
		assert.Equal(t, "RIFF", string(b))
		assert.Contains(t, res.RecordingURL, key)
	}
	assert.Contains(t, gen.prompts[0], `titled "Bakery pitch"`)
	assert.Contains(t, gen.prompts[0], "we sell fresh bread")

	list, err := svc.List(context.Background(), userA)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, res.ID, list[0].ID)

	require.NoError(t, svc.Delete(context.Background(), userA, res.ID))
	assert.Empty(t, rec.objects)
	assert.ErrorIs(t, svc.Delete(context.Background(), userA, res.ID), common.ErrorNotFound)
}

func TestPitchService_WithoutStorage(t *testing.T) {
	store := memory.NewStore()
	gen := &fakeGenerator{reply: json.RawMessage(`{"summary":"fine"}`)}
	svc := NewPitchService(nil, memory.NewManager(store), gen, nil,
		SimulatedTranscriber{}, nil, logging.Nop())

	res, err := svc.Analyze(context.Background(), userA, upload("audio"))
	require.NoError(t, err)
	assert.True(t, res.TranscriptionSimulated)
	assert.Empty(t, res.RecordingURL)
	assert.Equal(t, sampleTranscript, res.Transcript)
	assert.Empty(t, store.Pitches[0].RecordingKey)
}

func TestPitchService_RejectsBadUploads(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewPitchService(nil, memory.NewManager(memory.NewStore()), gen, nil,
		SimulatedTranscriber{}, nil, logging.Nop())

	_, err := svc.Analyze(context.Background(), userA, nil)
	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Audio file is required", ve.Message)

	up := upload("%PDF")
	up.ContentType = "application/pdf"
	_, err = svc.Analyze(context.Background(), userA, up)
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Uploaded file must be an audio recording", ve.Message)
	assert.Equal(t, 0, gen.Calls())
}

func TestPitchService_GenerationFailureSavesNothing(t *testing.T) {
	store := memory.NewStore()
	rec := &fakeRecordings{objects: map[string][]byte{}}
	gen := &fakeGenerator{err: errors.New("boom")}
	svc := NewPitchService(nil, memory.NewManager(store), gen, nil,
		SimulatedTranscriber{}, rec, logging.Nop())

	_, err := svc.Analyze(context.Background(), userA, upload("audio"))
	var ge *GenerationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, FeaturePitchAnalysis, ge.Feature)
	assert.Empty(t, store.Pitches)
	assert.Empty(t, rec.objects)
}

func TestPitchService_FailedStepsRemoveRecording(t *testing.T) {
	t.Run("transcription fails", func(t *testing.T) {
		rec := &fakeRecordings{objects: map[string][]byte{}}
		gen := &fakeGenerator{reply: json.RawMessage(`{"overallScore":5}`)}
		svc := NewPitchService(nil, memory.NewManager(memory.NewStore()), gen, nil,
			readingTranscriber{want: "something else"}, rec, logging.Nop())

		_, err := svc.Analyze(context.Background(), userA, upload("audio"))
		require.Error(t, err)
		assert.Empty(t, rec.objects)
		assert.Equal(t, 0, gen.Calls())
	})

	t.Run("saving fails", func(t *testing.T) {
		store := memory.NewStore()
		store.Err = errors.New("db down")
		rec := &fakeRecordings{objects: map[string][]byte{}}
		gen := &fakeGenerator{reply: json.RawMessage(`{"overallScore":5}`)}
		svc := NewPitchService(nil, memory.NewManager(store), gen, nil,
			SimulatedTranscriber{}, rec, logging.Nop())

		_, err := svc.Analyze(context.Background(), userA, upload("audio"))
		require.ErrorIs(t, err, store.Err)
		assert.Equal(t, 1, gen.Calls())
		assert.Empty(t, rec.objects)
	})
}
