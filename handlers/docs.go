package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrymomot/docsite"
	"github.com/dmitrymomot/docsite/pkg/content"
	"github.com/dmitrymomot/docsite/pkg/dispatch"
	"github.com/dmitrymomot/docsite/pkg/pages"
	"github.com/dmitrymomot/docsite/pkg/route"
	"github.com/dmitrymomot/docsite/views"
)

// VersionSource reports the current upstream version label.
// *version.Synchronizer satisfies it.
type VersionSource interface {
	Current(ctx context.Context) string
}

// DocsHandler serves the documentation pages, the version label and the
// page JSON used by client-side renderers.
type DocsHandler struct {
	server  *dispatch.Server
	version VersionSource
	site    views.Site
}

// NewDocsHandler creates a docs handler with injected dependencies.
func NewDocsHandler(server *dispatch.Server, version VersionSource, site views.Site) *DocsHandler {
	return &DocsHandler{server: server, version: version, site: site}
}

// Routes declares the docs routes.
// Implements the docsite.Handler interface.
func (h *DocsHandler) Routes(r docsite.Router) {
	r.GET("/version", h.currentVersion)
	r.GET("/api/page/{id}", h.pageJSON)
	r.Page("/", h.page)
	r.Page("/*", h.page)
}

// page dispatches the request path and renders the landing or doc view.
// Any URL mentioning /index.html is sent to the root.
func (h *DocsHandler) page(c docsite.Context) error {
	if strings.Contains(c.Request().URL.RequestURI(), "/index.html") {
		return c.Redirect(http.StatusMovedPermanently, "/")
	}

	res := h.server.Dispatch(c.Context(), route.FromHTTP(c.Request()))
	if !res.IsHome() && !res.Artifact.IsRendered() {
		c.LogWarn("page not rendered", "page", res.Page.String(), "reason", res.Artifact.Reason)
	}

	data := views.PageData{
		Site:     h.site,
		Version:  h.version.Current(c.Context()),
		Active:   res.Page,
		Artifact: res.Artifact,
	}

	status := http.StatusOK
	if !res.IsHome() {
		status = res.Artifact.StatusCode()
	}

	// htmx swaps only the main column.
	if c.Partial() {
		return c.Render(status, views.Content(data))
	}
	return c.Render(status, views.Page(data))
}

// currentVersion answers with the cached version label. It never fails:
// an unreachable upstream yields the last known value.
func (h *DocsHandler) currentVersion(c docsite.Context) error {
	c.SetHeader("Cache-Control", "no-cache")
	return c.String(http.StatusOK, h.version.Current(c.Context()))
}

// PageResponse is the JSON shape of GET /api/page/{id}.
type PageResponse struct {
	Page   string `json:"page"`
	Kind   string `json:"kind"`
	Title  string `json:"title,omitempty"`
	HTML   string `json:"html,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func (h *DocsHandler) pageJSON(c docsite.Context) error {
	id := pages.ID(c.Param("id"))

	art := content.NotFound(content.ReasonPageNotFound)
	if !id.IsHome() {
		art = h.server.Page(c.Context(), id).Artifact
	}

	return c.JSON(art.StatusCode(), PageResponse{
		Page:   id.String(),
		Kind:   art.Kind.String(),
		Title:  art.Title,
		HTML:   art.HTML,
		Reason: art.Reason,
	})
}
