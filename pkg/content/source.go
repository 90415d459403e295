package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/docsite/pkg/storage"
)

// Source provides read access to markdown files by location.
// Open must return an error wrapping ErrNotFound when the location is absent.
type Source interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// DirSource reads documentation from a file system.
type DirSource struct {
	fsys fs.FS
}

// NewDirSource creates a source backed by fsys.
func NewDirSource(fsys fs.FS) *DirSource {
	return &DirSource{fsys: fsys}
}

// Open opens location inside the file system.
func (s *DirSource) Open(_ context.Context, location string) (io.ReadCloser, error) {
	f, err := s.fsys.Open(location)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
		}
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, location)
	}

	return f, nil
}

// HTTPSource fetches documentation over HTTP relative to a base URL.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource creates a source that resolves locations against baseURL.
// A nil client falls back to http.DefaultClient.
func NewHTTPSource(baseURL string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{base: u, client: client}, nil
}

// Open performs a GET request for location.
// Non-2xx responses are reported as ErrNotFound; transport errors are returned as-is.
func (s *HTTPSource) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	ref, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base.ResolveReference(ref).String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %d", ErrNotFound, location, resp.StatusCode)
	}

	return resp.Body, nil
}

// BucketSource reads documentation from object storage.
type BucketSource struct {
	bucket storage.Reader
	prefix string
}

// NewBucketSource creates a source reading keys under prefix from bucket.
func NewBucketSource(bucket storage.Reader, prefix string) *BucketSource {
	return &BucketSource{bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (s *BucketSource) key(location string) string {
	if s.prefix == "" {
		return location
	}
	return s.prefix + "/" + location
}

// Open fetches the object stored at prefix/location.
func (s *BucketSource) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	body, err := s.bucket.Get(ctx, s.key(location))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
		}
		return nil, err
	}
	return body, nil
}

var (
	_ Source = (*DirSource)(nil)
	_ Source = (*HTTPSource)(nil)
	_ Source = (*BucketSource)(nil)
	_ Prober = (*BucketSource)(nil)
)

// Prober is implemented by sources that can check a location exists without
// transferring its body.
type Prober interface {
	Probe(ctx context.Context, location string) error
}

// Probe checks the object at prefix/location with a HEAD request.
func (s *BucketSource) Probe(ctx context.Context, location string) error {
	if _, err := s.bucket.Head(ctx, s.key(location)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, location)
		}
		return err
	}
	return nil
}

// Healthcheck returns a readiness check for location on src. Sources that
// implement Prober are probed; others are opened and closed.
func Healthcheck(src Source, location string) func(context.Context) error {
	return func(ctx context.Context) error {
		if p, ok := src.(Prober); ok {
			if err := p.Probe(ctx, location); err != nil {
				return fmt.Errorf("probe %s: %w", location, err)
			}
			return nil
		}
		rc, err := src.Open(ctx, location)
		if err != nil {
			return fmt.Errorf("open %s: %w", location, err)
		}
		return rc.Close()
	}
}
