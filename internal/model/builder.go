package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-projectform/pkg/openapi"
)

// ErrUnsupportedBody is returned for request bodies a flat form cannot
// represent.
var ErrUnsupportedBody = errors.New("model builder: unsupported request body")

// Option configures a Builder.
type Option func(*Builder)

// WithLabeler replaces DefaultLabeler. Nil keeps the default.
func WithLabeler(labeler func(string) string) Option {
	return func(b *Builder) {
		if labeler != nil {
			b.labeler = labeler
		}
	}
}

// Builder turns a write operation into a FormModel, one field per scalar
// request body property.
type Builder struct {
	labeler func(string) string
}

func New(options ...Option) *Builder {
	b := &Builder{labeler: DefaultLabeler}
	for _, option := range options {
		if option != nil {
			option(b)
		}
	}
	return b
}

// Build lays the body properties out as fields: the names listed in
// x-projectform-order first, then the rest alphabetically.
func (b *Builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if err := checkOperation(op); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Summary:     op.Summary,
		Description: op.Description,
		Fields:      make([]Field, 0, len(op.Body.Properties)),
	}

	metadata := map[string]string{}
	if op.Summary != "" {
		metadata["summary"] = op.Summary
	}
	if op.Description != "" {
		metadata["description"] = op.Description
	}
	for key, value := range op.Body.Hints {
		metadata[key] = value
	}
	if len(metadata) > 0 {
		form.Metadata = metadata
	}

	for _, name := range fieldOrder(op.Body) {
		form.Fields = append(form.Fields, b.field(name, op.Body.Properties[name], op.Body.IsRequired(name)))
	}
	return form, nil
}

func checkOperation(op pkgopenapi.Operation) error {
	switch {
	case op.ID == "":
		return errors.New("model builder: operation id is required")
	case op.Method == "":
		return fmt.Errorf("model builder: %s: method is required", op.ID)
	case op.Path == "":
		return fmt.Errorf("model builder: %s: path is required", op.ID)
	}
	names := make([]string, 0, len(op.Body.Properties))
	for name, property := range op.Body.Properties {
		if !property.Scalar() {
			names = append(names, fmt.Sprintf("%s (%s)", name, property.Type))
		}
	}
	if len(names) > 0 {
		sort.Strings(names)
		return fmt.Errorf("%w: %s: nested properties %s", ErrUnsupportedBody, op.ID, strings.Join(names, ", "))
	}
	return nil
}

func fieldOrder(body pkgopenapi.RequestBody) []string {
	names := make([]string, 0, len(body.Properties))
	placed := make(map[string]bool, len(body.Properties))
	for _, name := range body.Order {
		if _, ok := body.Properties[name]; ok && !placed[name] {
			placed[name] = true
			names = append(names, name)
		}
	}
	rest := make([]string, 0, len(body.Properties)-len(names))
	for name := range body.Properties {
		if !placed[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func (b *Builder) field(name string, property pkgopenapi.Property, required bool) Field {
	field := Field{
		Name:        name,
		Type:        fieldType(property.Type),
		Format:      property.Format,
		Required:    required,
		Label:       b.labeler(name),
		Description: property.Description,
		Default:     property.Default,
		Validations: rules(property),
	}
	if label := property.Hints["label"]; label != "" {
		field.Label = label
	}
	field.Placeholder = property.Hints["placeholder"]
	if len(property.Hints) > 0 {
		field.UIHints = make(map[string]string, len(property.Hints))
		for key, value := range property.Hints {
			field.UIHints[key] = value
		}
	}
	return field
}

func fieldType(schemaType string) FieldType {
	switch schemaType {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	}
	return FieldTypeString
}

// rules lists the length bounds, then the numeric bounds.
func rules(property pkgopenapi.Property) []ValidationRule {
	var out []ValidationRule
	add := func(kind, value string) {
		out = append(out, ValidationRule{Kind: kind, Params: map[string]string{"value": value}})
	}
	if property.MinLength != nil {
		add(ValidationRuleMinLength, strconv.Itoa(*property.MinLength))
	}
	if property.MaxLength != nil {
		add(ValidationRuleMaxLength, strconv.Itoa(*property.MaxLength))
	}
	if property.Minimum != nil {
		add(ValidationRuleMin, strconv.FormatFloat(*property.Minimum, 'f', -1, 64))
	}
	if property.Maximum != nil {
		add(ValidationRuleMax, strconv.FormatFloat(*property.Maximum, 'f', -1, 64))
	}
	return out
}
