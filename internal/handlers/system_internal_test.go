package handlers

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{"shorter than limit", "connection refused", 50, "connection refused"},
		{"exactly at limit", "abcde", 5, "abcde"},
		{"over limit", "abcdef", 5, "abcde"},
		{"multi-byte not split", "falha de conexão", 15, "falha de conexã"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.limit)
			if got != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.expected)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8: %q", tt.input, tt.limit, got)
			}
		})
	}
}
