package internal

import "net/http"

// ResponseWriter records the status and body size of a page response so
// the logging middleware can report them, and so the error handler can
// tell whether a handler already answered.
//
// A request is served by one goroutine, so no locking is done. Optional
// interfaces such as http.Flusher are reached through Unwrap with
// http.NewResponseController.
type ResponseWriter struct {
	http.ResponseWriter
	status  int
	size    int64
	written bool
}

// NewResponseWriter wraps w, or returns w itself when it is already a
// *ResponseWriter so nested middleware share one record.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader sends code. Later calls are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	if w.written {
		return
	}
	w.status, w.written = code, true
	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Status is the code sent, or 200 before anything was written.
func (w *ResponseWriter) Status() int { return w.status }

// Size is the number of body bytes written so far.
func (w *ResponseWriter) Size() int64 { return w.size }

// Written reports whether the status line has gone out.
func (w *ResponseWriter) Written() bool { return w.written }

// Unwrap exposes the wrapped writer to http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
