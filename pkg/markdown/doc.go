// Package markdown converts documentation sources to HTML.
//
// Rendering uses goldmark with GitHub Flavored Markdown, linkify, task lists
// and automatic heading ids. Output is sanitized with a bluemonday policy
// tuned for documentation (tables, code blocks with language classes, heading
// anchors). A leading YAML or TOML frontmatter block is stripped before
// rendering; its title is returned alongside the HTML.
//
// Example:
//
//	r := markdown.New()
//
//	html, err := r.Render([]byte("# Overview\nText"))
//	// html = "<h1 id=\"overview\">Overview</h1>\n<p>Text</p>\n"
//
//	doc, err := r.RenderDocument(src)
//	// doc.Title from frontmatter, doc.HTML rendered body
//
// A Renderer is safe for concurrent use.
package markdown
