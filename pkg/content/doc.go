// Package content loads documentation pages and renders them to HTML.
//
// A [Loader] looks a page id up in the [pages.Registry], reads the markdown
// source from a [Source] and renders it. The result is always an [Artifact]:
// either fully rendered HTML or a not-found marker carrying a human-readable
// reason. Read and render failures are logged and degrade to a not-found
// artifact; they are never returned as errors.
//
// Three sources are provided:
//
//   - [DirSource] reads from an [fs.FS], usually os.DirFS(docsDir)
//   - [HTTPSource] fetches files over HTTP relative to a base URL
//   - [BucketSource] reads objects from S3-compatible storage
//
// Example:
//
//	loader := content.NewLoader(
//		pages.Default(),
//		content.NewDirSource(os.DirFS("docs")),
//		markdown.New(),
//		content.WithLogger(log),
//	)
//
//	art := loader.Load(ctx, pages.Overview)
//	if !art.IsRendered() {
//		// art.Reason explains why
//	}
package content
