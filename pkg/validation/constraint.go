package validation

import (
	"math"
	"strconv"
)

// Kind distinguishes textual from numeric values.
type Kind int

const (
	KindText Kind = iota
	KindNumber
)

func (k Kind) String() string {
	if k == KindNumber {
		return "number"
	}
	return "text"
}

// Constraint pairs one value with the rules it must satisfy. Nil bounds are
// not applied.
type Constraint struct {
	Kind   Kind
	Text   string
	Number float64

	Required  bool
	MinLength *int
	MaxLength *int
	Min       *float64
	Max       *float64
}

// Option configures a Constraint.
type Option func(*Constraint)

// Required demands a non-blank value.
func Required() Option {
	return func(c *Constraint) { c.Required = true }
}

// MinLength demands more than n characters in a trimmed text value.
func MinLength(n int) Option {
	return func(c *Constraint) { c.MinLength = &n }
}

// MaxLength demands fewer than n characters in a trimmed text value.
func MaxLength(n int) Option {
	return func(c *Constraint) { c.MaxLength = &n }
}

// Min demands a numeric value of at least v.
func Min(v float64) Option {
	return func(c *Constraint) { c.Min = &v }
}

// Max demands a numeric value of at most v.
func Max(v float64) Option {
	return func(c *Constraint) { c.Max = &v }
}

// Text builds a constraint over a textual value.
func Text(value string, opts ...Option) Constraint {
	c := Constraint{Kind: KindText, Text: value}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// Number builds a constraint over a numeric value.
func Number(value float64, opts ...Option) Constraint {
	c := Constraint{Kind: KindNumber, Number: value}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// String returns the value's string form: the text itself, or the shortest
// decimal representation of the number ("NaN", "Infinity" for specials).
func (c Constraint) String() string {
	if c.Kind == KindText {
		return c.Text
	}
	return FormatNumber(c.Number)
}

// FormatNumber renders a number the way a browser stringifies it.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseNumber converts raw input the way a numeric form control coerces it:
// surrounding whitespace is ignored, blank input is zero, and anything
// unparseable is NaN. With integer set, fractional values are NaN too.
func ParseNumber(raw string, integer bool) float64 {
	trimmed := Trim(raw)
	if trimmed == "" {
		return 0
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return math.NaN()
	}
	if integer && value != math.Trunc(value) {
		return math.NaN()
	}
	return value
}
