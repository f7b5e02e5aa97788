package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Introduction to Go", "introduction-to-go"},
		{"punctuation collapses", "Node.js 2025 Professional Course", "node-js-2025-professional-course"},
		{"extra whitespace", "  Hello   World  ", "hello-world"},
		{"diacritics stripped", "Café au Lait", "cafe-au-lait"},
		{"repeated separators", "A---B___C", "a-b-c"},
		{"already a slug", "already-a-slug", "already-a-slug"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestCourseSlugFallback(t *testing.T) {
	// Titles with no latin characters slugify to nothing; a random slug
	// must be generated instead so the unique index holds.
	slug := CourseSlug("!!!")
	assert.NotEmpty(t, slug)
	assert.False(t, strings.HasPrefix(slug, "-"))

	other := CourseSlug("!!!")
	assert.NotEqual(t, slug, other)
}

func TestCourseSlugStable(t *testing.T) {
	assert.Equal(t, CourseSlug("Introduction to Go"), CourseSlug("Introduction to Go"))
}
