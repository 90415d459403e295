package dispatch

import (
	"context"

	"github.com/dmitrymomot/docsite/pkg/content"
	"github.com/dmitrymomot/docsite/pkg/pages"
	"github.com/dmitrymomot/docsite/pkg/route"
)

// Loader loads registered pages and free-standing resources.
// *content.Loader satisfies it.
type Loader interface {
	Load(ctx context.Context, id pages.ID) content.Artifact
	LoadResource(ctx context.Context, location string) content.Artifact
}

// Result is the outcome of dispatching one server request.
type Result struct {
	Page     pages.ID
	Artifact content.Artifact
}

// IsHome reports whether the landing view should be shown.
func (r Result) IsHome() bool {
	return r.Page.IsHome()
}

// Server dispatches server-side requests. It holds no per-request state.
type Server struct {
	resolver *route.Resolver
	loader   Loader
}

// NewServer creates a Server.
func NewServer(resolver *route.Resolver, loader Loader) *Server {
	return &Server{resolver: resolver, loader: loader}
}

// Dispatch resolves req and loads the page. Home is never loaded.
func (s *Server) Dispatch(ctx context.Context, req route.ServerRequest) Result {
	id := s.resolver.Resolve(req)
	if id.IsHome() {
		return Result{Page: id}
	}
	return Result{Page: id, Artifact: s.loader.Load(ctx, id)}
}

// Page loads a page by id without path resolution.
func (s *Server) Page(ctx context.Context, id pages.ID) Result {
	if id.IsHome() {
		return Result{Page: id}
	}
	return Result{Page: id, Artifact: s.loader.Load(ctx, id)}
}
