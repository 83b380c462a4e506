// Package orchestrator wires the loader → parser → model builder → decorator
// pipeline that produces the project form model, and resolves themes and
// renderers when a page is written out.
package orchestrator
