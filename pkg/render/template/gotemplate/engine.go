// Package gotemplate builds the template engines page renderers lay their
// documents out with. Both engines speak Django syntax through pongo2: the
// built-in one, and the goliatone/go-template engine with its hook support.
package gotemplate

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-projectform/pkg/render/template"
)

// Engine kinds accepted by WithEngine.
const (
	EnginePongo2     = "pongo2"
	EngineGoTemplate = "go-template"
)

// DefaultExtension is appended to template names without one.
const DefaultExtension = ".tmpl"

// ErrUnknownEngine is returned for an engine kind New cannot build.
var ErrUnknownEngine = errors.New("gotemplate: unknown engine")

// Engines lists the accepted engine kinds.
func Engines() []string {
	return []string{EngineGoTemplate, EnginePongo2}
}

// Option configures an engine before construction.
type Option func(*settings)

type settings struct {
	kind    string
	dir     string
	files   fs.FS
	ext     string
	filters map[string]pongo2.FilterFunction
	globals map[string]any
	hooks   []gotemplatepkg.PostHook
}

// WithEngine selects the engine kind. Blank keeps the pongo2 default.
func WithEngine(kind string) Option {
	return func(s *settings) {
		if kind = strings.ToLower(strings.TrimSpace(kind)); kind != "" {
			s.kind = kind
		}
	}
}

// WithBaseDir loads templates from a directory on disk, ahead of WithFS.
func WithBaseDir(dir string) Option {
	return func(s *settings) { s.dir = strings.TrimSpace(dir) }
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(s *settings) { s.files = files }
}

// WithExtension overrides DefaultExtension.
func WithExtension(ext string) Option {
	return func(s *settings) {
		if ext = strings.TrimSpace(ext); ext != "" {
			s.ext = "." + strings.TrimPrefix(ext, ".")
		}
	}
}

// WithFilter adds a pongo2 filter. pongo2 keeps filters process wide, so
// the first registration of a name wins.
func WithFilter(name string, fn pongo2.FilterFunction) Option {
	return func(s *settings) {
		if name = strings.TrimSpace(name); name == "" || fn == nil {
			return
		}
		if s.filters == nil {
			s.filters = map[string]pongo2.FilterFunction{}
		}
		s.filters[name] = fn
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(s *settings) {
		for key, value := range data {
			if key = strings.TrimSpace(key); key != "" {
				if s.globals == nil {
					s.globals = map[string]any{}
				}
				s.globals[key] = value
			}
		}
	}
}

// WithPostHook rewrites rendered output. Only the go-template engine runs
// hooks; New rejects them for pongo2.
func WithPostHook(hook gotemplatepkg.PostHook) Option {
	return func(s *settings) {
		if hook != nil {
			s.hooks = append(s.hooks, hook)
		}
	}
}

var _ template.TemplateRenderer = (*gotemplatepkg.Engine)(nil)

// New builds the engine selected by WithEngine.
func New(options ...Option) (template.TemplateRenderer, error) {
	s := settings{kind: EnginePongo2, ext: DefaultExtension}
	for _, option := range options {
		if option != nil {
			option(&s)
		}
	}
	if s.dir == "" && s.files == nil {
		return nil, errors.New("gotemplate: a template directory or fs.FS is required")
	}

	switch s.kind {
	case EnginePongo2:
		if len(s.hooks) > 0 {
			return nil, errors.New("gotemplate: post hooks need the go-template engine")
		}
		return newPongo(s)
	case EngineGoTemplate:
		return newLibrary(s)
	default:
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownEngine, s.kind, strings.Join(Engines(), ", "))
	}
}

func newLibrary(s settings) (*gotemplatepkg.Engine, error) {
	opts := []gotemplatepkg.Option{gotemplatepkg.WithExtension(s.ext)}
	if s.dir != "" {
		opts = append(opts, gotemplatepkg.WithBaseDir(s.dir))
	}
	if s.files != nil {
		opts = append(opts, gotemplatepkg.WithFS(s.files))
	}
	if len(s.filters) > 0 {
		funcs := make(map[string]any, len(s.filters))
		for name, fn := range s.filters {
			funcs[name] = fn
		}
		opts = append(opts, gotemplatepkg.WithTemplateFunc(funcs))
	}
	if len(s.globals) > 0 {
		opts = append(opts, gotemplatepkg.WithGlobalData(s.globals))
	}

	engine, err := gotemplatepkg.NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: go-template engine: %w", err)
	}
	for _, hook := range s.hooks {
		engine.RegisterPostHook(hook)
	}
	return engine, nil
}
