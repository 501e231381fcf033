package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Simple", "My Project", "my-project"},
		{"Punctuation Runs", "AI -- Powered!! App", "ai-powered-app"},
		{"Leading And Trailing", "  --Hello World--  ", "hello-world"},
		{"Accents", "Café Résumé", "cafe-resume"},
		{"Numbers", "Project 2.0 (beta)", "project-2-0-beta"},
		{"Already Slug", "already-a-slug", "already-a-slug"},
		{"Only Symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"My Project",
		"Café Résumé",
		"A   lot   of   spaces",
		"UPPER lower MiXeD",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "slugify must be idempotent for %q", in)
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("my-project"))
	assert.True(t, IsValidSlug("project2"))
	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("-leading"))
	assert.False(t, IsValidSlug("trailing-"))
	assert.False(t, IsValidSlug("Has Upper"))
}
