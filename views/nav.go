package views

import (
	"slices"
	"strings"

	"github.com/dmitrymomot/docsite/pkg/pages"
)

// NavLink is one sidebar entry.
type NavLink struct {
	ID    pages.ID
	Label string
	Href  string
}

// NavGroup is a titled block of sidebar entries.
type NavGroup struct {
	Title string
	Links []NavLink
}

var defaultGroups = []struct {
	title string
	links []NavLink
}{
	{"Get Started", []NavLink{
		{ID: pages.Home, Label: "Introduction"},
		{ID: pages.Overview, Label: "Overview"},
		{ID: pages.Usage, Label: "Usage Guide"},
	}},
	{"Advanced", []NavLink{
		{ID: pages.Internals, Label: "Technical Internals"},
	}},
	{"Compatibility", []NavLink{
		{ID: pages.MySQLSupport, Label: "MySQL Support"},
		{ID: pages.MariaDBSupport, Label: "MariaDB Support"},
	}},
	{"Resources", []NavLink{
		{ID: pages.Releases, Label: "Release Notes"},
		{ID: pages.FAQ, Label: "FAQ"},
	}},
}

// Nav builds the sidebar for reg. Built-in pages keep their usual groups
// and labels; any other registered page is listed under "More".
// Built-in pages missing from reg are left out.
func Nav(reg *pages.Registry) []NavGroup {
	seen := map[pages.ID]bool{}
	var out []NavGroup

	for _, g := range defaultGroups {
		group := NavGroup{Title: g.title}
		for _, l := range g.links {
			if !l.ID.IsHome() && !reg.Has(l.ID) {
				continue
			}
			seen[l.ID] = true
			l.Href = Href(l.ID)
			group.Links = append(group.Links, l)
		}
		if len(group.Links) > 0 {
			out = append(out, group)
		}
	}

	var extra []NavLink
	for _, id := range reg.IDs() {
		if seen[id] {
			continue
		}
		extra = append(extra, NavLink{ID: id, Label: Label(id), Href: Href(id)})
	}
	if len(extra) > 0 {
		slices.SortFunc(extra, func(a, b NavLink) int { return strings.Compare(a.Label, b.Label) })
		out = append(out, NavGroup{Title: "More", Links: extra})
	}
	return out
}

// Href is the server path of a page.
func Href(id pages.ID) string {
	if id.IsHome() {
		return "/"
	}
	return "/" + id.String()
}

// Label derives a display name from a page id: "getting_started" becomes
// "Getting Started".
func Label(id pages.ID) string {
	words := strings.FieldsFunc(id.String(), func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
