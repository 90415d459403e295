package version

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Remote fetches the latest version label.
type Remote interface {
	Fetch(ctx context.Context) (string, error)
}

// HTTPRemote reads a plain text version file over HTTP.
type HTTPRemote struct {
	url    string
	client *http.Client
}

// maxVersionSize bounds how much of the response body is read.
const maxVersionSize = 1 << 10

// NewHTTPRemote creates a Remote for url.
// A nil client uses an http.Client with a 10 second timeout.
func NewHTTPRemote(url string, client *http.Client) *HTTPRemote {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPRemote{url: url, client: client}
}

// Fetch performs a GET request and returns the body as a single trimmed line.
func (r *HTTPRemote) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxVersionSize))
	if err != nil {
		return "", err
	}

	return Normalize(string(body))
}

// RemoteFunc adapts a function to the Remote interface.
type RemoteFunc func(ctx context.Context) (string, error)

// Fetch calls f.
func (f RemoteFunc) Fetch(ctx context.Context) (string, error) {
	return f(ctx)
}

var (
	_ Remote = (*HTTPRemote)(nil)
	_ Remote = RemoteFunc(nil)
)
