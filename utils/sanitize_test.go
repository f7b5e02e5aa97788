package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHTMLAllowsLessonMarkup(t *testing.T) {
	in := `<h1>Intro</h1><p>Hello <strong>world</strong> and <em>friends</em></p><ul><li>one</li></ul><pre><code>x := 1</code></pre><hr/>`
	out := SanitizeHTML(in)

	assert.Contains(t, out, "<h1>Intro</h1>")
	assert.Contains(t, out, "<strong>world</strong>")
	assert.Contains(t, out, "<li>one</li>")
	assert.Contains(t, out, "<code>x := 1</code>")
}

func TestSanitizeHTMLStripsDisallowedMarkup(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		forbids string
	}{
		{"script removed", `<p>ok</p><script>alert(1)</script>`, "<script"},
		{"iframe removed", `<iframe src="https://evil.example"></iframe><p>ok</p>`, "<iframe"},
		{"img removed", `<p>ok</p><img src="x" onerror="alert(1)">`, "<img"},
		{"event handler removed", `<p onclick="alert(1)">ok</p>`, "onclick"},
		{"style attr removed", `<p style="color:red">ok</p>`, "style"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := SanitizeHTML(tt.in)
			assert.NotContains(t, out, tt.forbids)
			assert.Contains(t, out, "ok")
		})
	}
}

func TestSanitizeHTMLLinks(t *testing.T) {
	out := SanitizeHTML(`<a href="https://example.com/course">link</a>`)
	assert.Contains(t, out, `href="https://example.com/course"`)

	out = SanitizeHTML(`<a href="javascript:alert(1)">link</a>`)
	assert.NotContains(t, out, "javascript:")
}

func TestSanitizeHTMLIdempotent(t *testing.T) {
	in := `<p>Hello <strong>world</strong></p><script>alert(1)</script>`
	once := SanitizeHTML(in)
	twice := SanitizeHTML(once)
	assert.Equal(t, once, twice)
}
