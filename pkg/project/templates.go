package project

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-projectform/pkg/dom"
	"github.com/goliatone/go-projectform/pkg/model"
)

// Template names registered by NewTemplates.
const (
	TemplateInput  = "project-input"
	TemplateItem   = "single-project"
	TemplateList   = "project-list"
	defaultSubmit  = "ADD PROJECT"
	defaultHeading = "ACTIVE PROJECTS"
)

// Form model metadata keys read while building templates.
const (
	MetadataSubmitLabel = "submitLabel"
	MetadataListHeading = "list.heading"
)

// NewTemplates builds the three page fragments from a form model and
// registers them in a fresh template set.
func NewTemplates(form model.FormModel) (*dom.Templates, error) {
	input, err := inputTemplate(form)
	if err != nil {
		return nil, err
	}

	set := dom.NewTemplates()
	if err := set.Register(TemplateInput, dom.Fragment(input)); err != nil {
		return nil, err
	}
	if err := set.Register(TemplateItem, dom.Fragment(itemTemplate())); err != nil {
		return nil, err
	}
	if err := set.Register(TemplateList, dom.Fragment(listTemplate())); err != nil {
		return nil, err
	}
	return set, nil
}

// Heading returns the list heading a form model asks for.
func Heading(form model.FormModel) string {
	if heading := strings.TrimSpace(form.Metadata[MetadataListHeading]); heading != "" {
		return heading
	}
	return defaultHeading
}

func inputTemplate(form model.FormModel) (*html.Node, error) {
	if len(form.Fields) == 0 {
		return nil, fmt.Errorf("project: form %q has no fields", form.OperationID)
	}

	method := strings.ToLower(form.Method)
	if method == "" {
		method = "post"
	}
	formNode := dom.Element("form", []html.Attribute{
		dom.Attr("action", form.Endpoint),
		dom.Attr("method", method),
		dom.Attr("novalidate", ""),
	})

	for _, field := range form.Fields {
		control := fieldControl(field)
		group := dom.Element("div", []html.Attribute{dom.Attr("class", "form-control")},
			dom.Element("label", []html.Attribute{dom.Attr("for", field.Name)}, dom.Text(field.Label)),
			control,
		)
		if field.Description != "" {
			help, err := helpText(field.Description)
			if err != nil {
				return nil, fmt.Errorf("project: field %q: %w", field.Name, err)
			}
			group.AppendChild(help)
		}
		if err := dom.Append(formNode, group); err != nil {
			return nil, fmt.Errorf("project: field %q: %w", field.Name, err)
		}
	}

	submit := strings.TrimSpace(form.Metadata[MetadataSubmitLabel])
	if submit == "" {
		submit = defaultSubmit
	}
	button := dom.Element("button", []html.Attribute{dom.Attr("type", "submit")}, dom.Text(submit))
	if err := dom.Append(formNode, button); err != nil {
		return nil, err
	}
	return formNode, nil
}

func fieldControl(field model.Field) *html.Node {
	attrs := []html.Attribute{
		dom.Attr("id", field.Name),
		dom.Attr("name", field.Name),
	}
	if field.Placeholder != "" {
		attrs = append(attrs, dom.Attr("placeholder", field.Placeholder))
	}

	if field.Input() == "textarea" {
		if rows := field.UIHints["rows"]; rows != "" {
			attrs = append(attrs, dom.Attr("rows", rows))
		}
		return dom.Element("textarea", attrs)
	}

	attrs = append(attrs, dom.Attr("type", field.Input()))
	if field.Input() == "number" {
		if step := field.UIHints["step"]; step != "" {
			attrs = append(attrs, dom.Attr("step", step))
		}
		if rule, ok := field.Rule(model.ValidationRuleMin); ok {
			attrs = append(attrs, dom.Attr("min", rule.Params["value"]))
		}
		if rule, ok := field.Rule(model.ValidationRuleMax); ok {
			attrs = append(attrs, dom.Attr("max", rule.Params["value"]))
		}
	}
	return dom.Element("input", attrs)
}

func itemTemplate() *html.Node {
	return dom.Element("li", nil,
		dom.Element("h2", nil),
		dom.Element("h3", nil),
		dom.Element("p", nil),
	)
}

func listTemplate() *html.Node {
	return dom.Element("section", []html.Attribute{dom.Attr("class", "projects")},
		dom.Element("header", nil, dom.Element("h2", nil)),
		dom.Element("ul", nil),
	)
}
