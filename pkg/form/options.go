package form

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/goliatone/go-projectform/pkg/dom"
	"github.com/goliatone/go-projectform/pkg/model"
)

// AlertMessage is the text shown when input fails validation.
const AlertMessage = "Error"

// Alerter signals a blocking notice to the user.
type Alerter interface {
	Alert(ctx context.Context, message string)
}

// AlerterFunc adapts a function into an Alerter.
type AlerterFunc func(ctx context.Context, message string)

// Alert calls the underlying function.
func (fn AlerterFunc) Alert(ctx context.Context, message string) {
	fn(ctx, message)
}

// Option configures a Controller.
type Option func(*Controller)

// WithForm sets the form model the controller renders and validates against.
func WithForm(form model.FormModel) Option {
	return func(c *Controller) {
		c.form = form
	}
}

// WithTemplates supplies a prebuilt template set. When omitted the set is
// built from the form model.
func WithTemplates(templates *dom.Templates) Option {
	return func(c *Controller) {
		c.templates = templates
	}
}

// WithEvents shares an event table with the host.
func WithEvents(events *dom.Events) Option {
	return func(c *Controller) {
		c.events = events
	}
}

// WithAlerter routes validation failure notices.
func WithAlerter(alerter Alerter) Option {
	return func(c *Controller) {
		c.alerter = alerter
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(logger log.FieldLogger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func discardLogger() log.FieldLogger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}
