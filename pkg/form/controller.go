package form

import (
	"context"
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/goliatone/go-projectform/pkg/dom"
	"github.com/goliatone/go-projectform/pkg/model"
	"github.com/goliatone/go-projectform/pkg/project"
	"github.com/goliatone/go-projectform/pkg/validation"
)

// Form element id and the field names the controller requires.
const (
	FormID           = "user-input"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPeople      = "people"
	EventSubmit      = "submit"
)

// ErrValidation reports input that failed at least one constraint.
var ErrValidation = errors.New("form: validation failed")

// State is the controller's position in the submit cycle.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	if s == StateSubmitting {
		return "submitting"
	}
	return "idle"
}

// Controller owns the input form and the project list rendered under root.
// It is not safe for concurrent use; hosts serialise access.
type Controller struct {
	form      model.FormModel
	templates *dom.Templates
	events    *dom.Events
	alerter   Alerter
	logger    log.FieldLogger

	root    *html.Node
	element *html.Node
	inputs  map[string]*html.Node
	list    *project.List
	state   State

	outcome outcome
}

type outcome struct {
	draft project.Draft
	err   error
}

// New builds the controller, registers its submit listener, and mounts the
// form followed by the project list under root.
func New(root *html.Node, opts ...Option) (*Controller, error) {
	if root == nil {
		return nil, fmt.Errorf("form: root: %w", dom.ErrNilNode)
	}

	c := &Controller{root: root}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if len(c.form.Fields) == 0 {
		return nil, errors.New("form: form model is required")
	}
	if c.logger == nil {
		c.logger = discardLogger()
	}
	if c.events == nil {
		c.events = dom.NewEvents()
	}
	if c.alerter == nil {
		c.alerter = AlerterFunc(func(context.Context, string) {})
	}
	if c.templates == nil {
		templates, err := project.NewTemplates(c.form)
		if err != nil {
			return nil, fmt.Errorf("form: templates: %w", err)
		}
		c.templates = templates
	}

	element, err := c.templates.InstantiateElement(project.TemplateInput)
	if err != nil {
		return nil, fmt.Errorf("form: %w", err)
	}
	dom.SetAttr(element, "id", FormID)
	c.element = element

	c.inputs = make(map[string]*html.Node, 3)
	for _, name := range []string{FieldTitle, FieldDescription, FieldPeople} {
		input := dom.ByID(element, name)
		if input == nil {
			return nil, fmt.Errorf("form: input #%s not found", name)
		}
		if _, ok := c.form.Field(name); !ok {
			return nil, fmt.Errorf("form: form model has no field %q", name)
		}
		c.inputs[name] = input
	}

	if err := c.configure(); err != nil {
		return nil, err
	}
	if err := c.renderForm(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) configure() error {
	// Method value: the receiver is bound here, not at dispatch.
	if err := c.events.Listen(c.element, EventSubmit, c.submitHandler); err != nil {
		return fmt.Errorf("form: listen: %w", err)
	}
	return nil
}

func (c *Controller) renderForm() error {
	if err := dom.Prepend(c.root, c.element); err != nil {
		return fmt.Errorf("form: mount form: %w", err)
	}

	list, err := project.NewList(c.templates, project.Heading(c.form))
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}
	if err := list.Attach(c.root); err != nil {
		return fmt.Errorf("form: %w", err)
	}
	c.list = list
	return nil
}

func (c *Controller) submitHandler(ev *dom.Event) {
	ev.PreventDefault()
	ctx := ev.Context()
	if err := ctx.Err(); err != nil {
		c.outcome = outcome{err: err}
		return
	}

	c.state = StateSubmitting
	defer func() { c.state = StateIdle }()

	draft, failed := c.gatherUserInput()
	if len(failed) > 0 {
		c.logger.WithField("fields", failed).Debug("project input rejected")
		c.alerter.Alert(ctx, AlertMessage)
		c.outcome = outcome{err: ErrValidation}
		return
	}

	c.Clear()

	item, err := project.NewItem(c.templates, draft)
	if err != nil {
		c.outcome = outcome{err: fmt.Errorf("form: %w", err)}
		return
	}
	if err := c.list.AddProject(item); err != nil {
		c.outcome = outcome{err: fmt.Errorf("form: %w", err)}
		return
	}

	c.logger.WithFields(log.Fields{
		"id":     item.ID(),
		"title":  draft.Title,
		"people": draft.People,
	}).Info("project added")
	c.outcome = outcome{draft: draft}
}

// gatherUserInput validates the three inputs against the form model. It
// returns the names of failing fields, or the draft when none fail.
func (c *Controller) gatherUserInput() (project.Draft, []string) {
	values := c.Values()

	constraints := make(map[string]validation.Constraint, len(c.inputs))
	for name := range c.inputs {
		field, _ := c.form.Field(name)
		constraints[name] = validation.FromField(field, values[name])
	}

	if failed := validation.Failures(constraints); len(failed) > 0 {
		return project.Draft{}, failed
	}

	people := constraints[FieldPeople].Number
	if math.IsNaN(people) || people > math.MaxInt32 || people < math.MinInt32 {
		return project.Draft{}, []string{FieldPeople}
	}
	return project.Draft{
		Title:       values[FieldTitle],
		Description: values[FieldDescription],
		People:      int(people),
	}, nil
}

// Submit writes values into the inputs as if typed, dispatches a submit
// event, and returns the outcome. Unknown keys are ignored and missing keys
// keep the current input value.
func (c *Controller) Submit(ctx context.Context, values map[string]string) (project.Draft, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	for name, value := range values {
		if input, ok := c.inputs[name]; ok {
			dom.SetValue(input, value)
		}
	}

	c.outcome = outcome{}
	c.events.Dispatch(c.element, dom.NewEvent(ctx, EventSubmit))
	return c.outcome.draft, c.outcome.err
}

// Clear empties every input.
func (c *Controller) Clear() {
	for _, input := range c.inputs {
		dom.SetValue(input, "")
	}
}

// Values returns the current raw input values keyed by field name.
func (c *Controller) Values() map[string]string {
	values := make(map[string]string, len(c.inputs))
	for name, input := range c.inputs {
		values[name] = dom.Value(input)
	}
	return values
}

// State reports the current submit state.
func (c *Controller) State() State { return c.state }

// List returns the project list.
func (c *Controller) List() *project.List { return c.list }

// Form returns the form model.
func (c *Controller) Form() model.FormModel { return c.form }

// Element returns the form node.
func (c *Controller) Element() *html.Node { return c.element }

// Root returns the node the controller mounted into.
func (c *Controller) Root() *html.Node { return c.root }

// Events returns the event table the submit listener is registered on.
func (c *Controller) Events() *dom.Events { return c.events }
