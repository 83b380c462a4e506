package model

import (
	"github.com/goliatone/go-projectform/internal/model"
	pkgopenapi "github.com/goliatone/go-projectform/pkg/openapi"
)

// Builder converts a write operation into a form model.
type Builder interface {
	Build(op pkgopenapi.Operation) (FormModel, error)
}

// BuilderOption configures NewBuilder.
type BuilderOption = model.Option

// WithLabeler overrides how field names become labels.
func WithLabeler(labeler func(string) string) BuilderOption {
	return model.WithLabeler(labeler)
}

// NewBuilder returns the built-in Builder.
func NewBuilder(options ...BuilderOption) Builder {
	return model.New(options...)
}

// DefaultLabeler turns "teamSize" or "team_size" into "Team Size".
func DefaultLabeler(name string) string {
	return model.DefaultLabeler(name)
}

// Decorator adjusts a built form model, for example with UI schema labels.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Decorators runs in order and stops at the first error. Nil entries are
// skipped.
type Decorators []Decorator

func (ds Decorators) Decorate(form *FormModel) error {
	for _, d := range ds {
		if d == nil {
			continue
		}
		if err := d.Decorate(form); err != nil {
			return err
		}
	}
	return nil
}
