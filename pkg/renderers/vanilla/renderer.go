package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/net/html"

	"github.com/goliatone/go-projectform/pkg/dom"
	"github.com/goliatone/go-projectform/pkg/render"
	rendertemplate "github.com/goliatone/go-projectform/pkg/render/template"
	gotemplate "github.com/goliatone/go-projectform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-projectform/pkg/uischema"
)

// DefaultTitle is used when neither the options nor the form metadata name
// the page.
const DefaultTitle = "Projects"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateEngine   string
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateEngine picks the engine the page template runs on, one of
// gotemplate.Engines(). Blank keeps pongo2.
func WithTemplateEngine(kind string) Option {
	return func(cfg *config) {
		cfg.templateEngine = kind
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer lays the live element tree out inside a full HTML document.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithEngine(cfg.templateEngine),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the page document. The live tree is cloned before hidden
// fields are injected, so the page itself is never mutated.
func (r *Renderer) Render(ctx context.Context, page render.Page, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, errors.New("vanilla renderer: template renderer is nil")
	}
	if page.App == nil {
		return nil, errors.New("vanilla renderer: page has no element tree")
	}

	app := dom.Clone(page.App)
	if err := injectHiddenFields(app, opts.HiddenInputs()); err != nil {
		return nil, fmt.Errorf("vanilla renderer: inject hidden fields: %w", err)
	}
	markup, err := renderChildren(app)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render tree: %w", err)
	}

	alerts, err := scriptLiterals(opts.AlertMessages())
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: encode alerts: %w", err)
	}

	data := map[string]any{
		"title":  pageTitle(page, opts),
		"app":    markup,
		"alerts": alerts,
	}

	templateName := render.DefaultFallbacks()[render.PartialPage]
	if cfg := opts.Theme; cfg != nil {
		data["theme"] = cfg.Theme
		data["variant"] = cfg.Variant
		data["css_vars"] = render.CSSVarsStyle(cfg)
		if cfg.AssetURL != nil {
			data["stylesheet"] = cfg.AssetURL(render.AssetStylesheet)
		}
		if partial := strings.TrimSpace(cfg.Partials[render.PartialPage]); partial != "" {
			templateName = partial
		}
	}

	result, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func pageTitle(page render.Page, opts render.RenderOptions) string {
	if title := strings.TrimSpace(opts.Title); title != "" {
		return title
	}
	if title := strings.TrimSpace(page.Form.Metadata[uischema.MetadataTitle]); title != "" {
		return title
	}
	return DefaultTitle
}

// renderChildren renders what sits inside the app root; the layout supplies
// the root element itself.
func renderChildren(root *html.Node) (string, error) {
	var b strings.Builder
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if err := dom.Render(&b, child); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func injectHiddenFields(root *html.Node, inputs []*html.Node) error {
	if len(inputs) == 0 {
		return nil
	}
	form := dom.ByTag(root, "form")
	if form == nil {
		return errors.New("no form element")
	}
	for i := len(inputs) - 1; i >= 0; i-- {
		if err := dom.Prepend(form, inputs[i]); err != nil {
			return err
		}
	}
	return nil
}

// scriptLiterals encodes messages as JavaScript string literals. HTML
// characters are escaped so a message cannot close the script element.
func scriptLiterals(messages []string) ([]string, error) {
	if len(messages) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(messages))
	for _, message := range messages {
		raw, err := json.Marshal(message)
		if err != nil {
			return nil, err
		}
		out = append(out, string(raw))
	}
	return out, nil
}
