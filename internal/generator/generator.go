// Package generator synthesizes captions, hashtags, and preview imagery from
// a category and topic. It is pure: the same inputs always produce the same
// content and no input ever produces an error.
package generator

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// Content is the generated draft a caller can prefill a post with.
type Content struct {
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
	ImageURL string   `json:"image_url"`
}

// captionTemplates maps a known category to its caption tone. %s is the topic.
var captionTemplates = map[string]string{
	"fitness":  "Crushing it today: %s. Small steps, big results. Who's with me?",
	"travel":   "Wanderlust alert: %s. Pack your bags and chase the horizon.",
	"food":     "Fresh out of the kitchen: %s. Tag someone who needs a bite of this.",
	"tech":     "Deep dive: %s. The future is already shipping.",
	"fashion":  "Today's look: %s. Style is a way to say who you are without speaking.",
	"business": "Building in public: %s. Consistency beats intensity every time.",
}

// categoryTags supplies extra hashtags per known category.
var categoryTags = map[string][]string{
	"fitness":  {"fitfam", "noexcuses"},
	"travel":   {"wanderlust", "explore"},
	"food":     {"foodie", "homemade"},
	"tech":     {"innovation", "buildinpublic"},
	"fashion":  {"ootd", "styleinspo"},
	"business": {"entrepreneur", "growth"},
}

const genericTemplate = "Sharing something new: %s. Let us know what you think!"

// Generate produces a caption, hashtags, and a preview image URL for the
// given category and topic. Unknown categories fall back to a generic
// template rather than failing.
func Generate(category, topic string) Content {
	category = strings.TrimSpace(category)
	topic = strings.TrimSpace(topic)

	template, ok := captionTemplates[strings.ToLower(category)]
	if !ok {
		template = genericTemplate
	}

	return Content{
		Caption:  fmt.Sprintf(template, topic),
		Hashtags: hashtags(category, topic),
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/800", Slug(category+" "+topic)),
	}
}

// hashtags derives an ordered, duplicate-free list of #-prefixed tags from
// the category and the topic's words.
func hashtags(category, topic string) []string {
	var out []string
	seen := make(map[string]bool)

	add := func(word string) {
		tag := "#" + strings.ToLower(stripNonAlnum(word))
		if tag == "#" || seen[tag] {
			return
		}
		seen[tag] = true
		out = append(out, tag)
	}

	add(category)
	for _, word := range strings.Fields(topic) {
		add(word)
	}
	for _, extra := range categoryTags[strings.ToLower(category)] {
		add(extra)
	}

	// Inputs made entirely of punctuation strip to nothing; fall back to a
	// stable token so the list is never empty.
	if len(out) == 0 {
		out = append(out, "#"+hashToken(category+" "+topic))
	}
	return out
}

// Slug converts free text into a URL-safe lowercase token. Non-empty text
// with no usable characters slugs to a stable hash token instead of an empty
// string, so the result always works as an image seed.
func Slug(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" && s != "" {
		return hashToken(s)
	}
	return slug
}

// hashToken derives a short stable token from text whose characters are all
// stripped elsewhere.
func hashToken(s string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%08x", h.Sum32())
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
