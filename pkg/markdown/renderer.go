package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Document is a rendered source with its frontmatter metadata.
type Document struct {
	Title       string
	Description string
	HTML        string
}

// meta is the frontmatter shape recognized in documentation sources.
type meta struct {
	Title       string `yaml:"title" toml:"title"`
	Description string `yaml:"description" toml:"description"`
}

// Renderer converts markdown to sanitized HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	policy    *bluemonday.Policy
	hardWraps bool
	sanitize  bool
}

// WithoutSanitizer disables HTML sanitization.
// Only use with trusted sources.
func WithoutSanitizer() Option {
	return func(o *options) {
		o.sanitize = false
	}
}

// WithPolicy replaces the default sanitization policy.
func WithPolicy(p *bluemonday.Policy) Option {
	return func(o *options) {
		if p != nil {
			o.policy = p
		}
	}
}

// WithHardWraps renders soft line breaks as <br>.
func WithHardWraps() Option {
	return func(o *options) {
		o.hardWraps = true
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	o := &options{sanitize: true}
	for _, opt := range opts {
		opt(o)
	}

	// Raw HTML in sources is allowed through the engine and then filtered by
	// the sanitizer, so embedded <details> or <br> survive.
	rendererOptions := []renderer.Option{html.WithUnsafe()}
	if o.hardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
				extension.TaskList,
				extension.DefinitionList,
				extension.Footnote,
			),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(rendererOptions...),
		),
	}

	if o.sanitize {
		r.policy = o.policy
		if r.policy == nil {
			r.policy = DocsPolicy()
		}
	}

	return r
}

// Render converts markdown source to HTML.
// Frontmatter, if present, is not part of the output.
func (r *Renderer) Render(src []byte) (string, error) {
	doc, err := r.RenderDocument(src)
	if err != nil {
		return "", err
	}
	return doc.HTML, nil
}

// RenderDocument converts markdown source to HTML and returns frontmatter
// metadata alongside it.
func (r *Renderer) RenderDocument(src []byte) (*Document, error) {
	var m meta
	body, err := frontmatter.Parse(bytes.NewReader(src), &m)
	if err != nil {
		// Malformed frontmatter: render the source as-is rather than failing.
		body, m = src, meta{}
	}

	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	out := buf.String()
	if r.policy != nil {
		out = r.policy.Sanitize(out)
	}

	return &Document{
		Title:       m.Title,
		Description: m.Description,
		HTML:        out,
	}, nil
}
