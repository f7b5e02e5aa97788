package utils

import "github.com/microcosm-cc/bluemonday"

// lessonPolicy allows the tag set lesson authors may use and nothing else.
// Attributes are stripped except link targets, which are forced to safe URLs.
var lessonPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "strong", "em", "ul", "li", "a", "ol", "br",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"blockquote", "code", "hr", "pre",
	)
	p.AllowAttrs("href").OnElements("a")
	p.RequireParseableURLs(true)
	p.AllowURLSchemes("http", "https", "mailto")
	return p
}()

// SanitizeHTML strips everything outside the lesson allow-list. Idempotent on
// already-clean markup.
func SanitizeHTML(htmlContent string) string {
	return lessonPolicy.Sanitize(htmlContent)
}
