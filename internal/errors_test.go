package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/docsite/internal"
)

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	notFound := internal.NewHTTPError(http.StatusNotFound, "no such page")
	tests := []struct {
		name string
		err  error
		want *internal.HTTPError
	}{
		{"direct", notFound, notFound},
		{"wrapped twice", fmt.Errorf("render: %w", fmt.Errorf("load: %w", notFound)), notFound},
		{"unrelated", errors.New("disk full"), nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Same(t, tt.want, internal.AsHTTPError(tt.err))
			require.Equal(t, tt.want != nil, internal.IsHTTPError(tt.err))
		})
	}
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("wrap keeps the cause", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("read docs/faq.md: permission denied")
		err := internal.NewHTTPError(http.StatusServiceUnavailable, "Documentation source unavailable").Wrap(cause)

		require.Equal(t, http.StatusServiceUnavailable, err.StatusCode())
		require.Equal(t, "Service Unavailable", err.StatusText())
		require.Equal(t, "Documentation source unavailable", err.Error())
		require.ErrorIs(t, err, cause)
	})

	t.Run("empty message uses status text", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Gateway Timeout", internal.NewHTTPError(http.StatusGatewayTimeout, "").Error())
	})
}
