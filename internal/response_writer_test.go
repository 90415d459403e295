package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusOK)

	require.Equal(t, http.StatusNotFound, rw.Status())
	require.Equal(t, http.StatusNotFound, w.Code)
	require.True(t, rw.Written())
}

func TestResponseWriter_ImplicitOK(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)
	require.False(t, rw.Written())

	n, err := rw.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)

	_, err = rw.Write([]byte(" world"))
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, rw.Status())
	require.Equal(t, int64(11), rw.Size())
	require.Equal(t, "hello world", w.Body.String())
}

func TestNewResponseWriter_ReusesWrapper(t *testing.T) {
	t.Parallel()

	rw := NewResponseWriter(httptest.NewRecorder())
	require.Same(t, rw, NewResponseWriter(rw))
	require.NotNil(t, rw.Unwrap())
}

func TestResponseWriter_ResponseController(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)
	require.NoError(t, http.NewResponseController(rw).Flush())
	require.True(t, w.Flushed)
}
