package views_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/docsite/pkg/content"
	"github.com/dmitrymomot/docsite/pkg/pages"
	"github.com/dmitrymomot/docsite/views"
)

func render(t *testing.T, d views.PageData) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, views.Page(d).Render(context.Background(), &buf))
	return buf.String()
}

func TestNav(t *testing.T) {
	t.Parallel()

	t.Run("default registry keeps the sidebar groups", func(t *testing.T) {
		t.Parallel()

		nav := views.Nav(pages.Default())
		require.Len(t, nav, 4)
		require.Equal(t, "Get Started", nav[0].Title)
		require.Equal(t, "Introduction", nav[0].Links[0].Label)
		require.Equal(t, "/", nav[0].Links[0].Href)
		require.Equal(t, "/mysql_support", nav[2].Links[0].Href)
	})

	t.Run("unknown pages go under More", func(t *testing.T) {
		t.Parallel()

		reg := pages.MustNew(map[pages.ID]string{
			pages.FAQ:         "faq.md",
			"getting_started": "start.md",
		})
		nav := views.Nav(reg)
		require.Len(t, nav, 3)
		require.Equal(t, "More", nav[2].Title)
		require.Equal(t, views.NavLink{ID: "getting_started", Label: "Getting Started", Href: "/getting_started"}, nav[2].Links[0])
	})
}

func TestPage(t *testing.T) {
	t.Parallel()

	site := views.DefaultSite(pages.Default())

	t.Run("landing shows the version badge", func(t *testing.T) {
		t.Parallel()

		out := render(t, views.PageData{Site: site, Version: "2.6.1", Active: pages.Home})
		require.Contains(t, out, `class="is-home"`)
		require.Contains(t, out, "V2.6.1 GA Available")
		require.Contains(t, out, `id="home-view"`)
		require.NotContains(t, out, `id="doc-view"`)
	})

	t.Run("doc marks the active link and embeds html", func(t *testing.T) {
		t.Parallel()

		art := content.Rendered("<h1>Usage</h1>")
		art.Title = "Usage"
		out := render(t, views.PageData{Site: site, Version: "2.6.1", Active: pages.Usage, Artifact: art})

		require.Contains(t, out, "<title>Usage | MySQLTuner</title>")
		require.Contains(t, out, `<a href="/usage" class="nav-link active" aria-current="page">Usage Guide</a>`)
		require.Contains(t, out, `<a href="/faq" class="nav-link">FAQ</a>`)
		require.Contains(t, out, "<h1>Usage</h1>")
		require.Contains(t, out, "v2.6.1")
	})

	t.Run("not found shows the reason escaped", func(t *testing.T) {
		t.Parallel()

		out := render(t, views.PageData{Site: site, Active: "nope", Artifact: content.NotFound("<b>dial</b> failed")})
		require.Contains(t, out, "<h1>404</h1><p>&lt;b&gt;dial&lt;/b&gt; failed.</p>")
		require.NotContains(t, out, "version-badge")
	})

	t.Run("content omits the chrome", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		d := views.PageData{Site: site, Active: pages.FAQ, Artifact: content.Rendered("<p>q</p>")}
		require.NoError(t, views.Content(d).Render(context.Background(), &buf))
		require.Contains(t, buf.String(), "<p>q</p>")
		require.NotContains(t, buf.String(), "<aside")
	})
}

func TestLabel(t *testing.T) {
	t.Parallel()

	tests := map[pages.ID]string{
		"faq":             "Faq",
		"mysql_support":   "Mysql Support",
		"getting-started": "Getting Started",
	}
	for id, want := range tests {
		require.Equal(t, want, views.Label(id))
	}
}
