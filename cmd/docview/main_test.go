package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/docsite/pkg/logger"
)

func docsServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.StripPrefix("/public", http.FileServerFS(fstest.MapFS{
		"overview.md": {Data: []byte("# Overview\n\nText")},
		"faq.md":      {Data: []byte("# FAQ\n\nAsk **anything**.")},
	})))
	t.Cleanup(ts.Close)
	return ts
}

func TestRun(t *testing.T) {
	t.Parallel()

	ts := docsServer(t)
	cfg := Config{BaseURL: ts.URL + "/public/", Timeout: 2 * time.Second}

	var out bytes.Buffer
	in := strings.NewReader("#/docs/overview\n\n#/faq\n")

	err := run(context.Background(), cfg, in, &out, logger.NewNope())
	require.NoError(t, err)

	got := out.String()
	require.Contains(t, got, "[home]")
	require.Contains(t, got, "[overview]")
	require.Contains(t, got, "[faq]")
	require.Contains(t, got, "Ask **anything**.")
	require.True(t, strings.HasSuffix(strings.TrimSpace(got), "Ask **anything**."))
}

func TestRun_MissingPage(t *testing.T) {
	t.Parallel()

	ts := docsServer(t)
	cfg := Config{BaseURL: ts.URL + "/public/", Timeout: 2 * time.Second, Initial: "#/docs/usage"}

	var out bytes.Buffer
	err := run(context.Background(), cfg, strings.NewReader(""), &out, logger.NewNope())
	require.NoError(t, err)
	require.Contains(t, out.String(), "404: Documentation file not found")
}

func TestRun_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), Config{BaseURL: "not a url"}, strings.NewReader(""), &bytes.Buffer{}, logger.NewNope())
	require.Error(t, err)
}
