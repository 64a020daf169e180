package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pricofy/batch-translator/internal/domain"
	"github.com/pricofy/batch-translator/internal/handler"
)

type echoBatcher struct {
	calls int
}

func (e *echoBatcher) TranslateAll(_ context.Context, texts []string, _, _ string, _ int) ([]domain.Outcome, error) {
	e.calls++
	outcomes := make([]domain.Outcome, len(texts))
	for i, text := range texts {
		outcomes[i] = domain.Success(domain.Job{Index: i, Text: text}, text)
	}
	return outcomes, nil
}

func newTestApp(b handler.Batcher) *app {
	return &app{handler: handler.New(b, 5), logger: zap.NewNop()}
}

func TestHandleRequest_InvalidJSON(t *testing.T) {
	b := &echoBatcher{}
	a := newTestApp(b)

	resp, err := a.handleRequest(context.Background(), json.RawMessage(`{"texts":"Hello"}`))
	require.NoError(t, err)

	out, ok := resp.(*domain.Response)
	require.True(t, ok)
	assert.Contains(t, out.Error, "invalid request")
	assert.Zero(t, b.calls)
}

func TestHandleRequest_Translation(t *testing.T) {
	b := &echoBatcher{}
	a := newTestApp(b)

	resp, err := a.handleRequest(context.Background(),
		json.RawMessage(`{"texts":["Hello","World"],"sourceLang":"en","targetLang":"ja"}`))
	require.NoError(t, err)

	out := resp.(*domain.Response)
	assert.Empty(t, out.Error)
	assert.Len(t, out.Outcomes, 2)
	assert.Equal(t, 2, out.Succeeded)
}
