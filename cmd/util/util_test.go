package util

import (
	"strings"
	"testing"
)

// TestWrapString tests that no wrapped line exceeds Wrap characters
func TestWrapString(t *testing.T) {
	text := "Number of consecutive indices every benchmark works on, a larger width means larger stored ranges"
	wrapped := WrapString(text)

	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > Wrap {
			t.Errorf("Expected lines of at most %d characters, got %d: %q", Wrap, len(line), line)
		}
	}
	if strings.Join(strings.Fields(wrapped), " ") != text {
		t.Errorf("Expected wrapping to keep all words, got %q", wrapped)
	}
	if WrapString("") != "" {
		t.Errorf("Expected empty output for empty input")
	}
}
