// Package model defines the typed form model consumed by renderers and the
// form controller. Builders reside in internal/model but return the types
// defined here. Validation rules expose canonical identifiers (min/max,
// minLength/maxLength) with string parameters. Schema extensions under the
// `x-projectform-` prefix surface as Field.UIHints (for example `input:
// textarea`) and FormModel metadata (for example `submitLabel`).
package model
