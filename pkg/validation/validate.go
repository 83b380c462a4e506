package validation

import (
	"sort"

	"github.com/goliatone/go-projectform/pkg/model"
)

// Validate reports whether c's value satisfies every applicable rule.
func Validate(c Constraint) bool {
	valid := true

	if c.Required {
		valid = valid && Trim(c.String()) != ""
	}

	if c.Kind == KindText {
		length := Length(Trim(c.Text))
		if c.MinLength != nil {
			valid = valid && length > *c.MinLength
		}
		if c.MaxLength != nil {
			valid = valid && length < *c.MaxLength
		}
	}

	if c.Kind == KindNumber {
		if c.Min != nil {
			valid = valid && c.Number >= *c.Min
		}
		if c.Max != nil {
			valid = valid && c.Number <= *c.Max
		}
	}

	return valid
}

// FromField builds the constraint a form-model field declares for raw input.
// Integer and number fields coerce raw through ParseNumber.
func FromField(field model.Field, raw string) Constraint {
	var c Constraint
	switch field.Type {
	case model.FieldTypeInteger:
		c = Number(ParseNumber(raw, true))
	case model.FieldTypeNumber:
		c = Number(ParseNumber(raw, false))
	default:
		c = Text(raw)
	}
	c.Required = field.Required

	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleMinLength:
			if n, ok := rule.Int(); ok {
				c.MinLength = &n
			}
		case model.ValidationRuleMaxLength:
			if n, ok := rule.Int(); ok {
				c.MaxLength = &n
			}
		case model.ValidationRuleMin:
			if v, ok := rule.Float(); ok {
				c.Min = &v
			}
		case model.ValidationRuleMax:
			if v, ok := rule.Float(); ok {
				c.Max = &v
			}
		}
	}
	return c
}

// Failures validates each named constraint and returns the names that fail,
// sorted.
func Failures(named map[string]Constraint) []string {
	var failed []string
	for name, c := range named {
		if !Validate(c) {
			failed = append(failed, name)
		}
	}
	sort.Strings(failed)
	return failed
}
