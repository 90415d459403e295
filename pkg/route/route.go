// Package route resolves navigation requests to page identifiers.
//
// Two inputs are supported: server requests (URL path plus an optional ?p=
// selector) and client hash fragments (#/docs/<page>). Both are passed in as
// explicit values; the resolver never reads ambient request state.
package route

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/docsite/pkg/pages"
)

// PageParam is the query parameter that selects a page explicitly.
const PageParam = "p"

// Client routing prefixes.
const (
	HashPrefix     = "#/"
	DocsPrefix     = "docs/"
	ReleasesPrefix = "docs/releases/"
)

// ServerRequest is one server-side navigation input.
type ServerRequest struct {
	// Path is the URL path, e.g. "/docs/overview".
	Path string
	// Page is the raw page selector value; empty when absent.
	Page string
}

// FromHTTP builds a ServerRequest from an HTTP request.
func FromHTTP(r *http.Request) ServerRequest {
	return ServerRequest{
		Path: r.URL.Path,
		Page: r.URL.Query().Get(PageParam),
	}
}

// Target is the result of resolving a client hash fragment.
type Target struct {
	// Page is the resolved page. For release sub-resources it is pages.Releases.
	Page pages.ID
	// Resource is the location of a dynamic sub-resource, loaded without
	// consulting the registry. Empty for regular pages.
	Resource string
}

// IsHome reports whether the target is the landing view.
func (t Target) IsHome() bool {
	return t.Page.IsHome() && t.Resource == ""
}

// Resolver maps navigation requests to page identifiers.
type Resolver struct {
	registry *pages.Registry
	// client routes: "docs/<id>" and "<id>" for every registered id.
	hashRoutes    map[string]pages.ID
	clientDefault pages.ID
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClientDefault sets the page used for unmatched hash fragments.
// Defaults to pages.Overview.
func WithClientDefault(id pages.ID) Option {
	return func(r *Resolver) {
		if id != "" {
			r.clientDefault = id
		}
	}
}

// New creates a Resolver over the given registry.
func New(reg *pages.Registry, opts ...Option) *Resolver {
	r := &Resolver{
		registry:      reg,
		hashRoutes:    make(map[string]pages.ID, reg.Len()*2),
		clientDefault: pages.Overview,
	}
	for _, id := range reg.IDs() {
		r.hashRoutes[DocsPrefix+string(id)] = id
		r.hashRoutes[string(id)] = id
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps a server request to a page identifier.
//
// Precedence: explicit registered selector, then exact path match, then the
// last path segment. An unmatched non-empty path is returned unchanged so the
// loader can report it as not found. An empty path resolves to pages.Home.
func (r *Resolver) Resolve(req ServerRequest) pages.ID {
	if sel := pages.ID(req.Page); sel != "" && !sel.IsHome() && r.registry.Has(sel) {
		return sel
	}

	p := strings.Trim(req.Path, "/")
	if p == "" {
		return pages.Home
	}

	if id := pages.ID(p); r.registry.Has(id) {
		return id
	}

	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		if last := pages.ID(p[i+1:]); r.registry.Has(last) {
			return last
		}
	}

	return pages.ID(p)
}

// ResolveHash maps a client hash fragment to a target.
//
// Unmatched fragments resolve to the client default (pages.Overview), which
// differs from the server default on purpose.
func (r *Resolver) ResolveHash(fragment string) Target {
	rest := strings.TrimPrefix(fragment, "#")
	rest = strings.TrimPrefix(rest, "/")

	if rest == "" || rest == string(pages.Home) {
		return Target{Page: pages.Home}
	}

	if name, ok := strings.CutPrefix(rest, ReleasesPrefix); ok && name != "" {
		return Target{Page: pages.Releases, Resource: "releases/" + name}
	}

	if id, ok := r.hashRoutes[rest]; ok {
		return Target{Page: id}
	}

	return Target{Page: r.clientDefault}
}

// Registry returns the registry the resolver was built with.
func (r *Resolver) Registry() *pages.Registry {
	return r.registry
}
