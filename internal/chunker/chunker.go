// Package chunker provides token estimation and preview truncation for texts
// sent to the model.
package chunker

import "unicode/utf8"

// DefaultMaxTokens is the default input size above which a text is considered oversized.
const DefaultMaxTokens = 3000

// EstimateTokens estimates the token count for a text.
// Uses a simple heuristic: ~4 bytes per token.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	// Rough estimate: 1 token ≈ 4 bytes
	tokens := len(text) / 4
	if tokens == 0 {
		tokens = 1
	}
	return tokens
}

// Oversized reports whether text is estimated to exceed maxTokens.
// A non-positive maxTokens falls back to DefaultMaxTokens.
func Oversized(text string, maxTokens int) bool {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return EstimateTokens(text) > maxTokens
}

// Preview returns at most n runes of text, followed by "..." when truncated.
// Never splits a multi-byte character.
func Preview(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	count := 0
	for i := range text {
		if count == n {
			return text[:i] + "..."
		}
		count++
	}
	return text
}
