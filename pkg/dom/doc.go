// Package dom builds and manipulates server-side element trees on top of
// golang.org/x/net/html nodes. Fragments are constructed programmatically,
// registered as named templates, and cloned on demand so callers get
// independent live subtrees they can query, mutate, and render.
package dom
