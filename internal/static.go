package internal

import (
	"io/fs"
	"net/http"
	"strings"
)

type staticRoute struct {
	handler      http.Handler
	pattern      string
	cacheControl string
}

// staticHandler serves files of fsys, rooted at subDir, under pattern.
// Paths ending in "/" are 404 so directories are never listed.
func staticHandler(pattern string, fsys fs.FS, subDir, cacheControl string) (http.Handler, error) {
	if subDir != "" && subDir != "." {
		sub, err := fs.Sub(fsys, subDir)
		if err != nil {
			return nil, err
		}
		fsys = sub
	}

	files := http.FileServerFS(fsys)
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		if cacheControl != "" {
			w.Header().Set("Cache-Control", cacheControl)
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		files.ServeHTTP(w, r)
	})
	return http.StripPrefix(strings.TrimSuffix(pattern, "/"), h), nil
}
