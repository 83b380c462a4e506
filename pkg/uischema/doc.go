// Package uischema loads YAML/JSON overlays that adjust a built form model
// with copy and presentation hints: field labels, placeholders, input kinds,
// display order, and page headings. The model builder stays unaware of these
// optional overrides.
package uischema
