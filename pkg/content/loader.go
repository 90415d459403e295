package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/docsite/pkg/logger"
	"github.com/dmitrymomot/docsite/pkg/markdown"
	"github.com/dmitrymomot/docsite/pkg/pages"
)

// Renderer converts markdown source into a rendered document.
// *markdown.Renderer satisfies it.
type Renderer interface {
	RenderDocument(src []byte) (*markdown.Document, error)
}

// Loader resolves page ids to rendered artifacts.
type Loader struct {
	registry *pages.Registry
	source   Source
	renderer Renderer
	logger   *slog.Logger
	maxSize  int64
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used to report read and render failures.
func WithLogger(l *slog.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithMaxSize sets the largest source file the loader accepts. Larger files
// load as not found rather than being cut short.
// Default: 4 MiB
func WithMaxSize(n int64) Option {
	return func(ld *Loader) {
		if n > 0 {
			ld.maxSize = n
		}
	}
}

// DefaultMaxSize is the default read limit for a single source file.
const DefaultMaxSize = 4 << 20

// NewLoader creates a Loader.
func NewLoader(reg *pages.Registry, src Source, r Renderer, opts ...Option) *Loader {
	ld := &Loader{
		registry: reg,
		source:   src,
		renderer: r,
		logger:   logger.NewNope(),
		maxSize:  DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load reads and renders the page registered under id.
func (l *Loader) Load(ctx context.Context, id pages.ID) Artifact {
	location, ok := l.registry.Lookup(id)
	if !ok {
		return NotFound(ReasonPageNotFound)
	}
	return l.load(ctx, location)
}

// LoadResource reads and renders a location that is not in the registry,
// such as an individual release note.
func (l *Loader) LoadResource(ctx context.Context, location string) Artifact {
	if !pages.ValidLocation(location) {
		return NotFound(ReasonFileNotFound)
	}
	return l.load(ctx, location)
}

// LoadAsync runs Load in a goroutine.
// The returned channel receives exactly one artifact.
func (l *Loader) LoadAsync(ctx context.Context, id pages.ID) <-chan Artifact {
	return l.async(func() Artifact { return l.Load(ctx, id) })
}

// LoadResourceAsync runs LoadResource in a goroutine.
// The returned channel receives exactly one artifact.
func (l *Loader) LoadResourceAsync(ctx context.Context, location string) <-chan Artifact {
	return l.async(func() Artifact { return l.LoadResource(ctx, location) })
}

func (l *Loader) async(fn func() Artifact) <-chan Artifact {
	ch := make(chan Artifact, 1)
	go func() {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				l.logger.Error("content load panicked", slog.Any("panic", r))
				ch <- NotFound(fmt.Sprint(r))
			}
		}()
		ch <- fn()
	}()
	return ch
}

func (l *Loader) load(ctx context.Context, location string) Artifact {
	src, err := l.read(ctx, location)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			l.logger.DebugContext(ctx, "documentation file not found", slog.String("location", location))
			return NotFound(ReasonFileNotFound)
		}
		l.logger.WarnContext(ctx, "failed to read documentation file",
			slog.String("location", location),
			slog.String("error", err.Error()),
		)
		return NotFound(err.Error())
	}

	doc, err := l.renderer.RenderDocument(src)
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to render documentation file",
			slog.String("location", location),
			slog.String("error", err.Error()),
		)
		return NotFound(err.Error())
	}

	art := Rendered(doc.HTML)
	art.Title = doc.Title
	return art
}

func (l *Loader) read(ctx context.Context, location string) ([]byte, error) {
	rc, err := l.source.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	src, err := io.ReadAll(io.LimitReader(rc, l.maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(src)) > l.maxSize {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrTooLarge, location, l.maxSize)
	}
	return src, nil
}
