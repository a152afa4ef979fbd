package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "https://generativelanguage.googleapis.com", s.BaseURL)
	assert.Equal(t, 60*time.Second, s.Timeout)
	assert.Equal(t, 3, s.MaxRetries)
	assert.Equal(t, time.Second, s.RetryDelay)
	assert.Equal(t, 10*time.Second, s.MaxRetryDelay)
	assert.Equal(t, int64(104857600), s.MaxUploadSize)
	assert.Equal(t, []string{".txt", ".pdf", ".md", ".doc", ".docx", ".html", ".csv", ".json"}, s.AllowedExtensions)
	assert.Equal(t, "0.0.0.0:8000", s.Addr())
	assert.False(t, s.HasAPIKey())
}

func TestSettings_IsExtensionAllowed(t *testing.T) {
	s := DefaultSettings()

	tests := []struct {
		ext  string
		want bool
	}{
		{".pdf", true},
		{"pdf", true},
		{".PDF", true},
		{".exe", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, s.IsExtensionAllowed(tt.ext))
		})
	}
}

func TestParseExtensions(t *testing.T) {
	assert.Equal(t, []string{".txt", ".pdf", ".md"}, ParseExtensions(" txt, .PDF ,,md "))
	assert.Nil(t, ParseExtensions(""))
}

func TestSettings_HasAPIKey(t *testing.T) {
	assert.True(t, Settings{APIKey: "k"}.HasAPIKey())
	assert.False(t, Settings{APIKey: "  "}.HasAPIKey())
}
