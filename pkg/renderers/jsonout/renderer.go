// Package jsonout renders a page as a JSON snapshot of the form definition
// and the listed projects.
package jsonout

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-projectform/pkg/render"
)

type Option func(*Renderer)

// WithIndent pretty-prints the snapshot using the given indent.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer emits Snapshot documents.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// Snapshot is the serialized page state.
type Snapshot struct {
	OperationID string           `json:"operationId"`
	Endpoint    string           `json:"endpoint"`
	Method      string           `json:"method"`
	Fields      []Field          `json:"fields"`
	Projects    []render.Project `json:"projects"`
	Alerts      []string         `json:"alerts,omitempty"`
}

// Field summarises one form control.
type Field struct {
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	Label    string            `json:"label"`
	Required bool              `json:"required"`
	Rules    map[string]string `json:"rules,omitempty"`
}

func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, page render.Page, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshot := Snapshot{
		OperationID: page.Form.OperationID,
		Endpoint:    page.Form.Endpoint,
		Method:      page.Form.Method,
		Fields:      make([]Field, 0, len(page.Form.Fields)),
		Projects:    page.Projects,
		Alerts:      opts.AlertMessages(),
	}
	if snapshot.Projects == nil {
		snapshot.Projects = []render.Project{}
	}
	for _, field := range page.Form.Fields {
		out := Field{
			Name:     field.Name,
			Type:     string(field.Type),
			Label:    field.Label,
			Required: field.Required,
		}
		for _, rule := range field.Validations {
			if out.Rules == nil {
				out.Rules = make(map[string]string, len(field.Validations))
			}
			out.Rules[rule.Kind] = rule.Params["value"]
		}
		snapshot.Fields = append(snapshot.Fields, out)
	}

	var (
		raw []byte
		err error
	)
	if r.indent != "" {
		raw, err = json.MarshalIndent(snapshot, "", r.indent)
	} else {
		raw, err = json.Marshal(snapshot)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonout: encode snapshot: %w", err)
	}
	return raw, nil
}
