package chunker

import (
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{
			name:     "empty string",
			text:     "",
			expected: 0,
		},
		{
			name:     "short text",
			text:     "Hi",
			expected: 1, // 2/4 = 0, min 1
		},
		{
			name:     "typical sentence",
			text:     "This is a test sentence.",
			expected: 6, // 24/4 = 6
		},
		{
			name:     "japanese counts bytes",
			text:     "こんにちは",
			expected: 3, // 15 bytes / 4
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EstimateTokens(tt.text)
			if result != tt.expected {
				t.Errorf("EstimateTokens(%q) = %d, want %d", tt.text, result, tt.expected)
			}
		})
	}
}

func TestOversized(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxTokens int
		expected  bool
	}{
		{"fits", strings.Repeat("a", 40), 10, false},
		{"exceeds", strings.Repeat("a", 44), 10, true},
		{"default limit", strings.Repeat("a", 4*DefaultMaxTokens+4), 0, true},
		{"empty never oversized", "", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Oversized(tt.text, tt.maxTokens); got != tt.expected {
				t.Errorf("Oversized(len=%d, %d) = %v, want %v", len(tt.text), tt.maxTokens, got, tt.expected)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		n        int
		expected string
	}{
		{"shorter than limit", "Hello", 30, "Hello"},
		{"exact limit", "Hello", 5, "Hello"},
		{"truncated", "Hello, how are you?", 5, "Hello..."},
		{"multibyte truncated on rune boundary", "こんにちは世界", 5, "こんにちは..."},
		{"zero limit", "Hello", 0, ""},
		{"empty", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.text, tt.n); got != tt.expected {
				t.Errorf("Preview(%q, %d) = %q, want %q", tt.text, tt.n, got, tt.expected)
			}
		})
	}
}
