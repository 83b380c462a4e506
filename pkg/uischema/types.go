package uischema

import "strings"

// Store keeps the parsed operations from UI schema documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	operations map[string]Operation
}

// Operation describes the UI schema overrides for a specific OpenAPI operation.
type Operation struct {
	ID     string
	Source string
	Form   FormConfig
	Fields map[string]FieldConfig
}

// FormConfig captures page-level copy for the form and the project list.
type FormConfig struct {
	Title       string            `json:"title" yaml:"title"`
	SubmitLabel string            `json:"submitLabel" yaml:"submitLabel"`
	ListHeading string            `json:"listHeading" yaml:"listHeading"`
	Metadata    map[string]string `json:"metadata" yaml:"metadata"`
}

// FieldConfig customises how a single field is rendered.
type FieldConfig struct {
	Order        *int              `json:"order,omitempty" yaml:"order,omitempty"`
	Label        string            `json:"label,omitempty" yaml:"label,omitempty"`
	Description  string            `json:"description,omitempty" yaml:"description,omitempty"`
	Placeholder  string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Input        string            `json:"input,omitempty" yaml:"input,omitempty"`
	Rows         int               `json:"rows,omitempty" yaml:"rows,omitempty"`
	UIHints      map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
	OriginalPath string            `json:"-" yaml:"-"`
}

// NormalizeFieldPath trims whitespace and surrounding dots from a field key.
func NormalizeFieldPath(path string) string {
	return strings.Trim(strings.TrimSpace(path), ".")
}
