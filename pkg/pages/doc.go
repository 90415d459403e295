// Package pages defines the closed set of documentation pages served by the
// site and maps each page identifier to the location of its markdown source.
//
// A Registry is immutable once constructed. Construction validates the whole
// table, so an incomplete or malformed registry is rejected at startup rather
// than surfacing as a broken link at request time.
//
// # Usage
//
//	reg := pages.Default()
//
//	loc, ok := reg.Lookup(pages.Overview) // "overview.md", true
//	_, ok = reg.Lookup("unknown")         // "", false
//
// A registry can also be loaded from YAML:
//
//	pages:
//	  overview: overview.md
//	  releases: releases/index.md
//
//	f, _ := os.Open("pages.yaml")
//	reg, err := pages.LoadYAML(f)
//
// The identifier Home is reserved. It never has a source location; it stands
// for the landing view.
package pages
