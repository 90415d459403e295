// Package handlers wires the dispatcher, the version synchronizer and the
// views into HTTP routes.
package handlers
