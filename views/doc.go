// Package views renders the site's HTML pages.
//
// Components are templ.Component values backed by html/template, so they
// plug into Context.Render like any templ-generated component. The page
// chrome (sidebar, version badge, landing hero) lives in templates/.
package views
