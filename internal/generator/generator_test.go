package generator

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_KnownCategories(t *testing.T) {
	categories := []string{"Fitness", "Travel", "Food", "Tech", "Fashion", "Business"}

	for _, category := range categories {
		t.Run(category, func(t *testing.T) {
			content := Generate(category, "Morning routine")

			assert.NotEmpty(t, content.Caption)
			assert.Contains(t, content.Caption, "Morning routine")
			assert.NotEmpty(t, content.Hashtags)
			assert.NotEmpty(t, content.ImageURL)
		})
	}
}

func TestGenerate_UnknownCategoryFallsBack(t *testing.T) {
	content := Generate("Underwater Basket Weaving", "ancient techniques")

	assert.NotEmpty(t, content.Caption)
	assert.Contains(t, content.Caption, "ancient techniques")
	assert.NotEmpty(t, content.Hashtags)
}

func TestGenerate_Deterministic(t *testing.T) {
	first := Generate("Tech", "Go concurrency patterns")
	second := Generate("Tech", "Go concurrency patterns")

	assert.Equal(t, first, second)
}

func TestGenerate_HashtagShape(t *testing.T) {
	content := Generate("Fitness", "Morning routine tips")

	seen := make(map[string]bool)
	for _, tag := range content.Hashtags {
		assert.True(t, strings.HasPrefix(tag, "#"), "hashtag %q must start with #", tag)
		assert.Greater(t, len(tag), 1, "hashtag %q must not be bare", tag)
		assert.False(t, seen[tag], "hashtag %q appears twice", tag)
		seen[tag] = true
	}
}

func TestGenerate_ImageURLIsWellFormed(t *testing.T) {
	content := Generate("Travel", "Hidden beaches of Portugal")

	parsed, err := url.Parse(content.ImageURL)
	require.NoError(t, err)
	assert.Equal(t, "https", parsed.Scheme)
	assert.Equal(t, "picsum.photos", parsed.Host)
}

func TestGenerate_CaseInsensitiveCategory(t *testing.T) {
	upper := Generate("FITNESS", "leg day")
	lower := Generate("fitness", "leg day")

	assert.Equal(t, upper.Caption, lower.Caption)
	assert.Equal(t, upper.Hashtags, lower.Hashtags)
}

func TestGenerate_PunctuationOnlyInputs(t *testing.T) {
	content := Generate("!!!", "???")

	require.NotEmpty(t, content.Hashtags)
	for _, tag := range content.Hashtags {
		assert.True(t, strings.HasPrefix(tag, "#"), "hashtag %q must start with #", tag)
		assert.Greater(t, len(tag), 1, "hashtag %q must not be bare", tag)
	}

	parsed, err := url.Parse(content.ImageURL)
	require.NoError(t, err)
	assert.NotContains(t, parsed.Path, "//", "image seed must not be empty")

	// The fallback must stay deterministic like every other input.
	assert.Equal(t, content, Generate("!!!", "???"))
	assert.NotEmpty(t, Slug("!!!"))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Fitness Morning routine", "fitness-morning-routine"},
		{"  spaces   everywhere  ", "spaces-everywhere"},
		{"Go 1.26!", "go-1-26"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Slug(tt.in), "Slug(%q)", tt.in)
	}
}
