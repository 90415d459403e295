// Package termview renders navigator output to a terminal.
//
// View implements dispatch.View. Rendered documentation HTML is turned back
// into markdown text with html-to-markdown so it reads well in a terminal:
//
//	view := termview.New(os.Stdout, termview.WithClearScreen())
//	nav := dispatch.NewNavigator(resolver, loader, view)
//	go nav.Run(ctx, "")
//
// Write errors are sticky; check Err once the navigator stops.
package termview
