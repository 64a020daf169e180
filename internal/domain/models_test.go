package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeConstructors(t *testing.T) {
	job := Job{Index: 3, Text: "Hello", SourceLang: "en", TargetLang: "ja"}

	ok := Success(job, "こんにちは")
	assert.True(t, ok.OK())
	assert.Equal(t, 3, ok.Index)
	assert.Equal(t, "Hello", ok.Source)
	assert.Equal(t, "こんにちは", ok.Translation)

	cause := fmt.Errorf("%w: dial tcp: i/o timeout", ErrTransport)
	failed := Failure(job, cause)
	assert.False(t, failed.OK())
	assert.Equal(t, "Hello", failed.Source)
	assert.Equal(t, "transport error: dial tcp: i/o timeout", failed.Reason)
	assert.True(t, errors.Is(failed.Err, ErrTransport))
}

func TestOutcomeJSON(t *testing.T) {
	job := Job{Index: 1, Text: "Hello"}
	b, err := json.Marshal([]Outcome{
		Success(Job{Index: 0, Text: "World"}, "世界"),
		Failure(job, ErrMalformedResponse),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"index":0,"status":"success","source":"World","translation":"世界"},
		{"index":1,"status":"failure","source":"Hello","reason":"malformed response"}
	]`, string(b))
}

func TestResponseJSON_EmptyOutcomes(t *testing.T) {
	b, err := json.Marshal(Response{Outcomes: []Outcome{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"outcomes":[],"succeeded":0,"failed":0}`, string(b))
}
