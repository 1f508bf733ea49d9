package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/pitchpoa/internal/server/gemini"
)

// --- generator ---

// fakeGenerator records prompts and returns a canned reply.
type fakeGenerator struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	schemas []*gemini.Schema
	reply   json.RawMessage
	err     error
}

func (g *fakeGenerator) GenerateJSON(ctx context.Context, prompt string, schema *gemini.Schema) (json.RawMessage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.prompts = append(g.prompts, prompt)
	g.schemas = append(g.schemas, schema)
	if g.err != nil {
		return nil, g.err
	}
	return g.reply, nil
}

func (g *fakeGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}
