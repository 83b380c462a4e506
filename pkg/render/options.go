package render

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"golang.org/x/net/html"

	"github.com/goliatone/go-projectform/pkg/dom"
)

// RenderOptions carry per-request data renderers apply without mutating the
// page.
type RenderOptions struct {
	// Alerts are blocking notices shown once the page loads.
	Alerts []string
	// Hidden are inputs submitted with the form, such as the CSRF token.
	Hidden []HiddenField
	Theme  *theme.RendererConfig
	// Title overrides the document title.
	Title string
}

// HiddenField is one hidden form input.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// WithHidden returns a copy of o carrying name=value, replacing an earlier
// field of the same name. Blank names are ignored.
func (o RenderOptions) WithHidden(name, value string) RenderOptions {
	name = strings.TrimSpace(name)
	if name == "" {
		return o
	}
	hidden := make([]HiddenField, 0, len(o.Hidden)+1)
	for _, field := range o.Hidden {
		if field.Name != name {
			hidden = append(hidden, field)
		}
	}
	o.Hidden = append(hidden, HiddenField{Name: name, Value: value})
	return o
}

// HiddenInputs builds an input type=hidden element per field, sorted by name.
func (o RenderOptions) HiddenInputs() []*html.Node {
	if len(o.Hidden) == 0 {
		return nil
	}
	fields := append([]HiddenField(nil), o.Hidden...)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	inputs := make([]*html.Node, 0, len(fields))
	for _, field := range fields {
		inputs = append(inputs, dom.Element("input", []html.Attribute{
			dom.Attr("type", "hidden"),
			dom.Attr("name", field.Name),
			dom.Attr("value", field.Value),
		}))
	}
	return inputs
}

// AlertMessages returns the alerts trimmed, without blanks or repeats.
func (o RenderOptions) AlertMessages() []string {
	var out []string
	seen := make(map[string]bool, len(o.Alerts))
	for _, alert := range o.Alerts {
		alert = strings.TrimSpace(alert)
		if alert == "" || seen[alert] {
			continue
		}
		seen[alert] = true
		out = append(out, alert)
	}
	return out
}
