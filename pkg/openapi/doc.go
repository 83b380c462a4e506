// Package openapi describes the slice of an OpenAPI document a form is built
// from: where the document came from and the flat request body of each write
// operation. The kin-openapi backed loader and parser live in
// internal/openapi.
package openapi
