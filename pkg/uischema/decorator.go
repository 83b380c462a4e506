package uischema

import (
	"fmt"
	"sort"
	"strconv"

	pkgmodel "github.com/goliatone/go-projectform/pkg/model"
)

// Metadata keys written onto the form model.
const (
	MetadataTitle       = "layout.title"
	MetadataSubmitLabel = "submitLabel"
	MetadataListHeading = "list.heading"
)

// Decorator applies UI schema metadata to a form model.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate augments the supplied form model with UI schema metadata. When no
// matching operation is found the form is left untouched.
func (d *Decorator) Decorate(form *pkgmodel.FormModel) error {
	if d == nil || d.store == nil || d.store.Empty() || form == nil {
		return nil
	}

	op, ok := d.store.Operation(form.OperationID)
	if !ok {
		return nil
	}

	applyFormConfig(form, op.Form)
	return applyFieldConfig(form, op)
}

func applyFormConfig(form *pkgmodel.FormModel, cfg FormConfig) {
	for key, value := range cfg.Metadata {
		setMetadata(form, key, value)
	}
	if cfg.Title != "" {
		setMetadata(form, MetadataTitle, cfg.Title)
	}
	if cfg.SubmitLabel != "" {
		setMetadata(form, MetadataSubmitLabel, cfg.SubmitLabel)
	}
	if cfg.ListHeading != "" {
		setMetadata(form, MetadataListHeading, cfg.ListHeading)
	}
}

func setMetadata(form *pkgmodel.FormModel, key, value string) {
	if form.Metadata == nil {
		form.Metadata = make(map[string]string)
	}
	form.Metadata[key] = value
}

func applyFieldConfig(form *pkgmodel.FormModel, op Operation) error {
	index := make(map[string]int, len(form.Fields))
	for i, field := range form.Fields {
		index[field.Name] = i
	}

	orders := make(map[string]int, len(op.Fields))
	for path, cfg := range op.Fields {
		i, ok := index[path]
		if !ok {
			return fmt.Errorf("uischema: operation %q (file %s) references unknown field %q", op.ID, op.Source, cfg.OriginalPath)
		}
		field := &form.Fields[i]

		if cfg.Label != "" {
			field.Label = cfg.Label
		}
		if cfg.Description != "" {
			field.Description = cfg.Description
		}
		if cfg.Placeholder != "" {
			field.Placeholder = cfg.Placeholder
		}
		for key, value := range cfg.UIHints {
			setHint(field, key, value)
		}
		if cfg.Input != "" {
			setHint(field, "input", cfg.Input)
		}
		if cfg.Rows > 0 {
			setHint(field, "rows", strconv.Itoa(cfg.Rows))
		}
		if cfg.Order != nil {
			orders[path] = *cfg.Order
		}
	}

	if len(orders) > 0 {
		original := make(map[string]int, len(form.Fields))
		for i, field := range form.Fields {
			original[field.Name] = i
		}
		sort.SliceStable(form.Fields, func(i, j int) bool {
			return rank(form.Fields[i].Name, orders, original) < rank(form.Fields[j].Name, orders, original)
		})
	}
	return nil
}

// rank places explicitly ordered fields first, then the rest in their
// original position.
func rank(name string, orders, original map[string]int) int {
	if order, ok := orders[name]; ok {
		return order
	}
	return len(orders) + 1000 + original[name]
}

func setHint(field *pkgmodel.Field, key, value string) {
	if field.UIHints == nil {
		field.UIHints = make(map[string]string)
	}
	field.UIHints[key] = value
}
