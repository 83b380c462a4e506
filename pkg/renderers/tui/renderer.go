package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"github.com/goliatone/go-projectform/pkg/model"
	"github.com/goliatone/go-projectform/pkg/render"
	"github.com/goliatone/go-projectform/pkg/validation"
)

// FailureMessage is printed when an answer fails validation.
const FailureMessage = "Error"

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	logger            log.FieldLogger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = defaultDriver()
	}
	if r.logger == nil {
		logger := log.New()
		logger.SetOutput(io.Discard)
		r.logger = logger
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prints pending alerts, prompts for every field of the page's form,
// and returns the collected answers serialized in the configured format.
func (r *Renderer) Render(ctx context.Context, page render.Page, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	for _, alert := range opts.AlertMessages() {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+alert); err != nil {
			return nil, err
		}
	}

	values, err := r.Collect(ctx, page.Form, nil)
	if err != nil {
		return nil, err
	}
	values, err = r.transform(values)
	if err != nil {
		return nil, err
	}
	return r.serialize(page.Form, values)
}

// Collect prompts for each field in order. An answer that fails the field's
// constraint prints FailureMessage and the field is asked again with the
// rejected answer as its default. prefill seeds the defaults.
func (r *Renderer) Collect(ctx context.Context, form model.FormModel, prefill map[string]string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	values := make(map[string]string, len(form.Fields))
	for _, field := range form.Fields {
		answer, err := r.promptField(ctx, field, defaultValue(field, prefill))
		if err != nil {
			return nil, err
		}
		values[field.Name] = answer
	}
	return values, nil
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, current string) (string, error) {
	for {
		answer, err := r.ask(ctx, field, current)
		if err != nil {
			return "", err
		}
		if validation.Validate(validation.FromField(field, answer)) {
			return answer, nil
		}
		r.logger.WithFields(log.Fields{"field": field.Name}).Debug("answer rejected")
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+FailureMessage); err != nil {
			return "", err
		}
		current = answer
	}
}

func (r *Renderer) ask(ctx context.Context, field model.Field, current string) (string, error) {
	label := displayLabel(field)
	if field.Type == model.FieldTypeBoolean {
		ok, err := r.driver.Confirm(ctx, label, current == "true")
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(ok), nil
	}
	return r.driver.Ask(ctx, Question{
		Field:     field.Name,
		Message:   label,
		Default:   current,
		Help:      field.Description,
		Multiline: field.Input() == "textarea",
	})
}

func (r *Renderer) transform(values map[string]string) (map[string]string, error) {
	if r.submitTransformer == nil {
		return values, nil
	}
	out, err := r.submitTransformer(values)
	if err != nil {
		return nil, fmt.Errorf("tui: submit transformer: %w", err)
	}
	return out, nil
}

func (r *Renderer) serialize(form model.FormModel, values map[string]string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for name, value := range values {
			encoded.Set(name, value)
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, field := range form.Fields {
			fmt.Fprintf(&b, "%s: %s\n", displayLabel(field), values[field.Name])
		}
		return []byte(b.String()), nil
	default:
		typed := make(map[string]any, len(values))
		for name, value := range values {
			typed[name] = value
			field, ok := form.Field(name)
			if !ok {
				continue
			}
			switch field.Type {
			case model.FieldTypeInteger, model.FieldTypeNumber:
				n := validation.ParseNumber(value, field.Type == model.FieldTypeInteger)
				if !math.IsNaN(n) && !math.IsInf(n, 0) {
					typed[name] = n
				}
			case model.FieldTypeBoolean:
				typed[name] = value == "true"
			}
		}
		raw, err := json.Marshal(typed)
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return raw, nil
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func defaultValue(field model.Field, prefill map[string]string) string {
	if value, ok := prefill[field.Name]; ok {
		return value
	}
	if field.Default == nil {
		return ""
	}
	return fmt.Sprint(field.Default)
}
