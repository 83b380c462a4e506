package projectform

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"golang.org/x/net/html"

	"github.com/goliatone/go-projectform/pkg/form"
	"github.com/goliatone/go-projectform/pkg/model"
	"github.com/goliatone/go-projectform/pkg/orchestrator"
	"github.com/goliatone/go-projectform/pkg/render"
)

// RenderOptions describes per-request data renderers apply, such as alerts
// and hidden fields.
type RenderOptions = render.RenderOptions

// Page is the state renderers work from.
type Page = render.Page

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// FormModel builds the bundled project form model.
func FormModel(ctx context.Context, options ...orchestrator.Option) (model.FormModel, error) {
	return orchestrator.New(options...).Form(ctx, orchestrator.Request{})
}

// Mount builds the project form and mounts a controller into root: the form
// first, then the project list.
func Mount(ctx context.Context, root *html.Node, options ...orchestrator.Option) (*form.Controller, error) {
	fm, err := FormModel(ctx, options...)
	if err != nil {
		return nil, err
	}
	ctrl, err := form.New(root, form.WithForm(fm))
	if err != nil {
		return nil, fmt.Errorf("projectform: %w", err)
	}
	return ctrl, nil
}

// RenderHTML renders the controller's page as a full HTML document.
func RenderHTML(ctx context.Context, ctrl *form.Controller, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	if ctrl == nil {
		return nil, fmt.Errorf("projectform: controller is nil")
	}
	return orchestrator.New(options...).Render(ctx, orchestrator.RenderRequest{
		Renderer: "vanilla",
		Page:     ctrl.Page(),
		Options:  opts,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme and variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
