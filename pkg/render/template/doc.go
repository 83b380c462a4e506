// Package template defines the renderer-agnostic template contract. The
// gotemplate subpackage builds the pongo2 and go-template implementations.
package template
