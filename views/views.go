package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/docsite/pkg/content"
	"github.com/dmitrymomot/docsite/pkg/pages"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(
	template.New("views").Funcs(template.FuncMap{
		"isActive": func(active, id pages.ID) bool { return active == id },
	}).ParseFS(templateFS, "templates/*.html"),
)

// Site holds the values that are the same on every page.
type Site struct {
	Name          string
	Description   string
	RepositoryURL string
	AssetsPath    string
	Nav           []NavGroup
}

// DefaultSite returns the site chrome for reg.
func DefaultSite(reg *pages.Registry) Site {
	return Site{
		Name:          "MySQLTuner",
		Description:   "Official documentation for MySQLTuner-perl. Optimize MySQL, MariaDB, and Percona Server with 300+ verified indicators.",
		RepositoryURL: "https://github.com/jmrenouard/MySQLTuner-perl",
		AssetsPath:    "/assets",
		Nav:           Nav(reg),
	}
}

// PageData is everything one page render needs.
type PageData struct {
	Site     Site
	Version  string
	Active   pages.ID
	Artifact content.Artifact
}

// IsHome reports whether the landing view is shown.
func (d PageData) IsHome() bool {
	return d.Active.IsHome()
}

// Title is the document title.
func (d PageData) Title() string {
	if d.IsHome() {
		return d.Site.Name + " | The Gold Standard Database Tuning Advisor"
	}
	if d.Artifact.Title != "" {
		return d.Artifact.Title + " | " + d.Site.Name
	}
	return d.Site.Name
}

// Body is the artifact's HTML. It has already been sanitized by the
// markdown renderer.
func (d PageData) Body() template.HTML {
	return template.HTML(d.Artifact.HTML) //nolint:gosec // sanitized upstream
}

// Page renders the full document: landing view for home, doc view otherwise.
func Page(d PageData) templ.Component {
	return execute("page", d)
}

// Content renders only the main column, without the sidebar and head.
func Content(d PageData) templ.Component {
	return execute("main", d)
}

func execute(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return tmpl.ExecuteTemplate(w, name, data)
	})
}
