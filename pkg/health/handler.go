package health

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"
)

// LivenessHandler answers 200 for as long as the process can serve HTTP.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, http.StatusOK, &Response{Status: StatusHealthy}, "OK")
	}
}

// ReadinessHandler runs checks on every probe and answers 503 while any
// of them fails. The plain text body names the failing checks.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		resp := runChecks(r.Context(), checks, cfg)
		if resp.Status == StatusHealthy {
			respond(w, r, http.StatusOK, resp, "OK")
			return
		}
		respond(w, r, http.StatusServiceUnavailable, resp,
			"unavailable: "+strings.Join(resp.Failing(), ", "))
	}
}

// Failing returns the sorted names of the checks that did not pass.
func (r *Response) Failing() []string {
	var names []string
	for name, c := range r.Checks {
		if c.Status != StatusHealthy {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func respond(w http.ResponseWriter, r *http.Request, status int, resp *Response, text string) {
	// Probes must never see a cached answer.
	w.Header().Set("Cache-Control", "no-store")

	if r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}
