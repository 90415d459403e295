package markdown

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var languageClass = regexp.MustCompile(`^language-[\w+-]+$`)

// DocsPolicy returns the sanitization policy used for documentation pages.
// It extends bluemonday's UGC policy with heading anchors, code language
// classes, task list checkboxes and <details> blocks.
func DocsPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6", "li", "sup")
	p.AllowAttrs("class").Matching(languageClass).OnElements("code")
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")
	p.AllowElements("details", "summary")
	p.RequireNoFollowOnLinks(false)
	return p
}
