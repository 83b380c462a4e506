package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	theme "github.com/goliatone/go-theme"
	log "github.com/sirupsen/logrus"

	internalLoader "github.com/goliatone/go-projectform/internal/openapi/loader"
	internalParser "github.com/goliatone/go-projectform/internal/openapi/parser"
	"github.com/goliatone/go-projectform/pkg/model"
	pkgopenapi "github.com/goliatone/go-projectform/pkg/openapi"
	"github.com/goliatone/go-projectform/pkg/project"
	"github.com/goliatone/go-projectform/pkg/render"
	"github.com/goliatone/go-projectform/pkg/renderers/jsonout"
	"github.com/goliatone/go-projectform/pkg/renderers/vanilla"
	"github.com/goliatone/go-projectform/pkg/uischema"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithTemplateEngine selects the template engine of the built-in page
// renderer ("pongo2" or "go-template"). It has no effect with WithRegistry.
func WithTemplateEngine(kind string) Option {
	return func(o *Orchestrator) {
		o.templateEngine = kind
	}
}

// WithDefaultRenderer overrides the renderer used when a render request
// omits one.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaTransformer registers a Transformer that gets the last word on the
// form model, after every decorator ran.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithUIDecorators registers decorators that run against the generated form
// model after the UI schema decorator.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithUISchemaFS supplies an fs.FS holding UI schema documents. Pass nil to
// disable the embedded defaults.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
		o.uiSchemaSpecified = true
	}
}

// WithThemeSelector overrides the theme selector. Pass nil to render without
// theme configuration.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeSpecified = true
	}
}

// WithThemeFallbacks overrides the partials used when a theme omits them.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		if len(fallbacks) > 0 {
			o.themeFallbacks = fallbacks
		}
	}
}

// WithLogger routes pipeline logs to logger.
func WithLogger(logger log.FieldLogger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from OpenAPI document to form model
// and from page to rendered output. Missing dependencies are initialised with
// the built-in implementations.
type Orchestrator struct {
	loader            pkgopenapi.Loader
	parser            pkgopenapi.Parser
	builder           model.Builder
	registry          *render.Registry
	templateEngine    string
	defaultRenderer   string
	initialiseErr     error
	decorators        []model.Decorator
	uiSchemaFS        fs.FS
	uiSchemaSpecified bool
	transformer       Transformer
	themeSelector     theme.ThemeSelector
	themeSpecified    bool
	themeFallbacks    map[string]string
	logger            log.FieldLogger
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request selects the operation a form model is built from. Source and
// Document are optional; the bundled project definition is used when both
// are empty. OperationID defaults to project.OperationID.
type Request struct {
	Source      pkgopenapi.Source
	Document    *pkgopenapi.Document
	OperationID string
}

// RenderRequest describes one page render.
type RenderRequest struct {
	// Renderer names the renderer; empty selects the default renderer.
	Renderer string
	Page     render.Page
	Options  render.RenderOptions
	// ThemeName and ThemeVariant are resolved through the theme selector
	// unless Options.Theme is already set.
	ThemeName    string
	ThemeVariant string
}

// Form runs the loader → parser → builder → decorator → transformer sequence
// and returns the resulting form model.
func (o *Orchestrator) Form(ctx context.Context, req Request) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, err
	}

	operationID := req.OperationID
	if operationID == "" {
		operationID = project.OperationID
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return model.FormModel{}, err
	}

	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: parse operations: %w", err)
	}

	op, ok := operations[operationID]
	if !ok {
		return model.FormModel{}, fmt.Errorf("orchestrator: operation %q not found", operationID)
	}

	form, err := o.builder.Build(op)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}

	if err := o.applyDecorators(&form); err != nil {
		return model.FormModel{}, err
	}
	if err := o.applyTransformer(ctx, &form); err != nil {
		return model.FormModel{}, err
	}

	o.logger.WithFields(log.Fields{
		"operation": operationID,
		"source":    doc.Location(),
		"fields":    len(form.Fields),
	}).Debug("form model built")
	return form, nil
}

// Render resolves the theme and renderer for req and renders its page.
func (o *Orchestrator) Render(ctx context.Context, req RenderRequest) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.Options
	if opts.Theme == nil && o.themeSelector != nil {
		cfg, err := render.ResolveTheme(o.themeSelector, req.ThemeName, req.ThemeVariant, o.themeFallbacks)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		opts.Theme = cfg
	}

	output, err := renderer.Render(ctx, req.Page, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderer returns the named renderer, or the default one when name is
// empty. If the default is missing the first registered renderer is used.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	if name != "" {
		renderer, err := o.registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		return renderer, nil
	}
	if renderer, err := o.registry.Get(o.defaultRenderer); err == nil {
		return renderer, nil
	}
	renderer, err := o.registry.First()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

// RendererFor returns the renderer producing mediaType, such as text/html
// for the page or application/json for the project list.
func (o *Orchestrator) RendererFor(mediaType string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.ForMediaType(mediaType)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

// Registry exposes the renderer registry so callers can add renderers.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source.IsZero() {
		return project.Definition(), nil
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) applyDecorators(form *model.FormModel) error {
	if err := model.Decorators(o.decorators).Decorate(form); err != nil {
		return fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, form *model.FormModel) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, form); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		logger := log.New()
		logger.SetOutput(io.Discard)
		o.logger = logger
	}
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewOptions())
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.registry == nil {
		page, err := vanilla.New(vanilla.WithTemplateEngine(o.templateEngine))
		if err == nil {
			o.registry, err = render.NewRegistry(page, jsonout.New())
		}
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
			o.registry, _ = render.NewRegistry(jsonout.New())
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = render.DefaultFallbacks()
	}
	if !o.themeSpecified {
		selector, err := render.NewManifestSelector("", render.DefaultManifest())
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default theme: %w", err)
		} else {
			o.themeSelector = selector
		}
	}

	o.ensureUIDecorator()
}

// ensureUIDecorator puts the UI schema decorator ahead of caller decorators.
func (o *Orchestrator) ensureUIDecorator() {
	if !o.uiSchemaSpecified && o.uiSchemaFS == nil {
		o.uiSchemaFS = uischema.EmbeddedFS()
	}
	if o.uiSchemaFS == nil {
		return
	}

	store, err := uischema.LoadFS(o.uiSchemaFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load ui schema: %w", err)
		return
	}
	if store.Empty() {
		return
	}

	o.decorators = append([]model.Decorator{uischema.NewDecorator(store)}, o.decorators...)
}
