package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "k", Model: "gemini-test", BaseURL: srv.URL + "/", Timeout: 5 * time.Second})
}

func reply(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}}},
	})
	return string(b)
}

func TestGenerateJSON_Success(t *testing.T) {
	var gotReq generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &gotReq))
		_, _ = w.Write([]byte(reply(`{"summary":"ok","recommendations":[]}`)))
	})

	schema := Object(map[string]*Schema{"summary": String(""), "recommendations": Array(String(""))})
	out, err := c.GenerateJSON(context.Background(), "hello", schema)
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"ok","recommendations":[]}`, string(out))

	require.Len(t, gotReq.Contents, 1)
	assert.Equal(t, "hello", gotReq.Contents[0].Parts[0].Text)
	assert.Equal(t, "application/json", gotReq.GenerationConfig.ResponseMimeType)
	assert.Equal(t, []string{"recommendations", "summary"}, gotReq.GenerationConfig.ResponseSchema.Required)
}

func TestGenerateJSON_CodeFence(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(reply("```json\n{\"a\":1}\n```")))
	})

	out, err := c.GenerateJSON(context.Background(), "p", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(out))
}

func TestGenerateJSON_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`quota exceeded`))
	})

	_, err := c.GenerateJSON(context.Background(), "p", nil)
	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusTooManyRequests, upErr.StatusCode)
	assert.Equal(t, "quota exceeded", upErr.Body)
}

func TestGenerateJSON_MissingCandidateText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := c.GenerateJSON(context.Background(), "p", nil)
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestGenerateJSON_MalformedOutput(t *testing.T) {
	for _, text := range []string{"not json", `["a","b"]`, `null`, `{"a":`} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(reply(text)))
		})
		_, err := c.GenerateJSON(context.Background(), "p", nil)
		assert.ErrorIs(t, err, ErrMalformedOutput, text)
	}
}

func TestGenerateJSON_NotConfigured(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := c.GenerateJSON(context.Background(), "p", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerateJSON_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GenerateJSON(ctx, "p", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
