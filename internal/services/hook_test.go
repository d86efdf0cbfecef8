package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHookExtractor_Extract(t *testing.T) {
	h := NewHookExtractor()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"first sentence", "Most founders get pricing wrong. Here's why.", "Most founders get pricing wrong."},
		{"first line wins", "I quit my job\n\nThen this happened.", "I quit my job"},
		{"leading blank lines", "\n\n  Hooks matter.  More text.", "Hooks matter."},
		{"links stripped", "https://t.co/abc Read this thread. It is long.", "Read this thread."},
		{"only a link", "https://t.co/abc", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Extract(tt.text))
		})
	}
}

func TestHookExtractor_NilFallsBackToLine(t *testing.T) {
	var h *HookExtractor
	assert.Equal(t, "One. Two.", h.Extract("One. Two.\nThree"))
}
