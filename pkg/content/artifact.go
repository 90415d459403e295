package content

import "net/http"

// Kind distinguishes rendered artifacts from not-found markers.
type Kind uint8

const (
	KindNotFound Kind = iota
	KindRendered
)

// String returns the kind name used in JSON responses.
func (k Kind) String() string {
	if k == KindRendered {
		return "rendered"
	}
	return "not_found"
}

// Reasons used for not-found artifacts.
const (
	ReasonPageNotFound = "Page not found"
	ReasonFileNotFound = "Documentation file not found"
)

// Artifact is the outcome of loading one page.
// It is never partially rendered: either HTML is complete or Reason is set.
type Artifact struct {
	Kind   Kind
	HTML   string
	Title  string
	Reason string
}

// Rendered wraps rendered HTML.
func Rendered(html string) Artifact {
	return Artifact{Kind: KindRendered, HTML: html}
}

// NotFound creates a not-found artifact with the given reason.
func NotFound(reason string) Artifact {
	return Artifact{Kind: KindNotFound, Reason: reason}
}

// IsRendered reports whether the artifact carries HTML.
func (a Artifact) IsRendered() bool {
	return a.Kind == KindRendered
}

// StatusCode maps the artifact to an HTTP status code.
func (a Artifact) StatusCode() int {
	if a.IsRendered() {
		return http.StatusOK
	}
	return http.StatusNotFound
}
