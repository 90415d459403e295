package termview

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/dmitrymomot/docsite/pkg/content"
	"github.com/dmitrymomot/docsite/pkg/dispatch"
	"github.com/dmitrymomot/docsite/pkg/pages"
)

const (
	clearScreen = "\033[H\033[2J"
	rule        = "----------------------------------------"
)

// Option configures a View.
type Option func(*View)

// WithClearScreen clears the terminal on ScrollTop instead of printing a rule.
func WithClearScreen() Option {
	return func(v *View) {
		v.clear = true
	}
}

// WithHomeText replaces the text printed for the landing view.
func WithHomeText(text string) Option {
	return func(v *View) {
		v.home = text
	}
}

// WithDomain resolves relative links in rendered pages against domain.
func WithDomain(domain string) Option {
	return func(v *View) {
		v.domain = domain
	}
}

// View writes navigator output to an io.Writer.
type View struct {
	mu     sync.Mutex
	w      io.Writer
	conv   *converter.Converter
	clear  bool
	home   string
	domain string
	active pages.ID
	err    error
}

var _ dispatch.View = (*View)(nil)

// New creates a View writing to w.
func New(w io.Writer, opts ...Option) *View {
	v := &View{
		w: w,
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		home:   "MySQLTuner documentation\n\nEnter a fragment such as #/overview, #/faq or #/docs/releases/v2.6.0.",
		active: pages.Home,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *View) ShowHome() {
	v.printf("%s\n", v.home)
}

func (v *View) ShowDoc() {}

func (v *View) ShowLoading() {
	v.printf("Loading documentation...\n")
}

// ShowArtifact prints a rendered page as markdown, or the not-found reason.
func (v *View) ShowArtifact(a content.Artifact) {
	if !a.IsRendered() {
		v.printf("404: %s\n", a.Reason)
		return
	}

	var opts []converter.ConvertOptionFunc
	if v.domain != "" {
		opts = append(opts, converter.WithDomain(v.domain))
	}
	md, err := v.conv.ConvertString(a.HTML, opts...)
	if err != nil {
		v.setErr(fmt.Errorf("%w: %v", ErrConvertFailed, err))
		v.printf("%s\n", a.HTML)
		return
	}

	if a.Title != "" {
		v.printf("# %s\n\n", a.Title)
	}
	v.printf("%s\n", strings.TrimSpace(md))
}

// SetActive prints the navigation marker.
func (v *View) SetActive(id pages.ID) {
	v.mu.Lock()
	v.active = id
	v.mu.Unlock()
	v.printf("[%s]\n", id)
}

func (v *View) ScrollTop() {
	if v.clear {
		v.printf("%s", clearScreen)
		return
	}
	v.printf("%s\n", rule)
}

// Active returns the last id passed to SetActive.
func (v *View) Active() pages.ID {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.active
}

// Err returns the first write or conversion error.
func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *View) printf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, err := fmt.Fprintf(v.w, format, args...); err != nil && v.err == nil {
		v.err = err
	}
}

func (v *View) setErr(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.err == nil {
		v.err = err
	}
}
