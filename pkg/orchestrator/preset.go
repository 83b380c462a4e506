package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-projectform/pkg/model"
	"github.com/goliatone/go-projectform/pkg/uischema"
)

// Transformer has the last word on a form model, after every decorator.
type Transformer interface {
	Transform(ctx context.Context, form *model.FormModel) error
}

// TransformerFunc adapts a function into a Transformer.
type TransformerFunc func(ctx context.Context, form *model.FormModel) error

func (fn TransformerFunc) Transform(ctx context.Context, form *model.FormModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// Preset rewrites the copy of the project form, read from YAML or JSON:
//
//	title: Sprint board
//	submitLabel: ADD SPRINT
//	listHeading: PLANNED SPRINTS
//	fields:
//	  title: {label: Goal, placeholder: Ship the beta}
//	  description: {help: "What <em>done</em> looks like", rows: 5}
//
// Presets change labels and hints only. Field names, types and constraints
// come from the OpenAPI definition.
type Preset struct {
	Title       string                 `json:"title" yaml:"title"`
	SubmitLabel string                 `json:"submitLabel" yaml:"submitLabel"`
	ListHeading string                 `json:"listHeading" yaml:"listHeading"`
	Metadata    map[string]string      `json:"metadata" yaml:"metadata"`
	Fields      map[string]FieldPreset `json:"fields" yaml:"fields"`
}

// FieldPreset overrides the copy of one field.
type FieldPreset struct {
	Label       string `json:"label" yaml:"label"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	// Help is shown under the control and may hold inline markup.
	Help    string            `json:"help" yaml:"help"`
	Rows    int               `json:"rows" yaml:"rows"`
	UIHints map[string]string `json:"uiHints" yaml:"uiHints"`
}

var _ Transformer = (*Preset)(nil)

// ParsePreset decodes a preset. Names ending in .json are read as JSON,
// anything else as YAML.
func ParsePreset(name string, data []byte) (*Preset, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("preset %s: empty document", name)
	}
	var preset Preset
	var err error
	if strings.EqualFold(path.Ext(name), ".json") {
		err = json.Unmarshal(data, &preset)
	} else {
		err = yaml.Unmarshal(data, &preset)
	}
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", name, err)
	}
	for field, patch := range preset.Fields {
		if patch.Rows < 0 {
			return nil, fmt.Errorf("preset %s: field %q: rows must not be negative", name, field)
		}
	}
	return &preset, nil
}

// LoadPreset reads and parses name from files.
func LoadPreset(files fs.FS, name string) (*Preset, error) {
	if files == nil {
		return nil, errors.New("preset: filesystem is nil")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("preset: name is required")
	}
	data, err := fs.ReadFile(files, name)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	return ParsePreset(name, data)
}

// Transform applies the preset. Every field it names must exist on form.
func (p *Preset) Transform(ctx context.Context, form *model.FormModel) error {
	if form == nil {
		return errors.New("preset: form model is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var unknown []string
	for name := range p.Fields {
		if _, ok := form.Field(name); !ok {
			unknown = append(unknown, strconv.Quote(name))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("preset: field %s not found on %s", strings.Join(unknown, ", "), form.OperationID)
	}

	metadata := map[string]string{}
	for key, value := range p.Metadata {
		metadata[key] = value
	}
	for key, value := range map[string]string{
		uischema.MetadataTitle:       p.Title,
		uischema.MetadataSubmitLabel: p.SubmitLabel,
		uischema.MetadataListHeading: p.ListHeading,
	} {
		if value = strings.TrimSpace(value); value != "" {
			metadata[key] = value
		}
	}
	if len(metadata) > 0 && form.Metadata == nil {
		form.Metadata = make(map[string]string, len(metadata))
	}
	for key, value := range metadata {
		form.Metadata[key] = value
	}

	for i := range form.Fields {
		if patch, ok := p.Fields[form.Fields[i].Name]; ok {
			patch.apply(&form.Fields[i])
		}
	}
	return nil
}

func (patch FieldPreset) apply(field *model.Field) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	if patch.Help != "" {
		field.Description = patch.Help
	}
	hints := make(map[string]string, len(patch.UIHints)+1)
	for key, value := range patch.UIHints {
		hints[key] = value
	}
	if patch.Rows > 0 {
		hints["rows"] = strconv.Itoa(patch.Rows)
	}
	if len(hints) == 0 {
		return
	}
	if field.UIHints == nil {
		field.UIHints = make(map[string]string, len(hints))
	}
	for key, value := range hints {
		field.UIHints[key] = value
	}
}
