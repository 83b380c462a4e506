// Package validation checks a single field value against a declarative
// constraint descriptor. Length bounds are exclusive and numeric bounds are
// inclusive; checks that do not apply to the value's kind are skipped.
package validation
