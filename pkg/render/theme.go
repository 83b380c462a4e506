package render

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// Theme partial and asset keys understood by the bundled renderers.
const (
	PartialPage     = "layout.page"
	AssetStylesheet = "stylesheet"
)

// ErrThemeNotFound is returned when selecting an unregistered theme.
var ErrThemeNotFound = errors.New("render: theme not found")

// DefaultFallbacks returns the partials used when a theme does not override
// them.
func DefaultFallbacks() map[string]string {
	return map[string]string{
		PartialPage: "templates/page.tmpl",
	}
}

// DefaultManifest describes the bundled theme and its dark variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "projectform",
		Version: "1.0.0",
		Tokens: map[string]string{
			"primary":    "#ff0062",
			"surface":    "#ffffff",
			"text":       "#1a1a1a",
			"font":       "sans-serif",
			"card-width": "40rem",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				AssetStylesheet: "app.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface": "#1f1f24",
					"text":    "#f0f0f0",
				},
			},
		},
	}
}

// ManifestSelector resolves theme selections from registered manifests. The
// first registered manifest is the default when a name is omitted.
type ManifestSelector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector creates a selector holding the provided manifests.
func NewManifestSelector(defaultVariant string, manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{
		manifests:      make(map[string]*theme.Manifest),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds a manifest keyed by its name.
func (s *ManifestSelector) Register(manifest *theme.Manifest) error {
	if manifest == nil {
		return errors.New("render: theme manifest is nil")
	}
	name := strings.TrimSpace(manifest.Name)
	if name == "" {
		return errors.New("render: theme manifest name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.manifests[name]; exists {
		return fmt.Errorf("render: theme %q already registered", name)
	}
	s.manifests[name] = manifest
	if s.defaultTheme == "" {
		s.defaultTheme = name
	}
	return nil
}

// Select resolves name and variant to a selection. Empty values fall back to
// the defaults; an unknown variant is an error.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.defaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", name, variant)
		}
	}

	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Names lists registered theme names.
func (s *ManifestSelector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveTheme selects a theme and derives the renderer configuration:
// variant tokens and templates override the base manifest, templates are
// layered over fallbacks, and every token becomes a "--token" CSS variable.
func ResolveTheme(selector theme.ThemeSelector, name, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme: %w", err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	return RendererConfig(selection, fallbacks), nil
}

// RendererConfig flattens a selection into the configuration renderers use.
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	manifest := selection.Manifest
	variant := manifest.Variants[selection.Variant]

	partials := mergeStrings(fallbacks, manifest.Templates, variant.Templates)
	tokens := mergeStrings(manifest.Tokens, variant.Tokens)

	var cssVars map[string]string
	if len(tokens) > 0 {
		cssVars = make(map[string]string, len(tokens))
		for key, value := range tokens {
			cssVars["--"+key] = value
		}
	}

	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}
	files := mergeStrings(manifest.Assets.Files, variant.Assets.Files)

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
				return file
			}
			return path.Join("/", prefix, file)
		},
	}
}

// CSSVarsStyle renders CSS variables as a deterministic declaration list.
func CSSVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";")
	}
	return b.String()
}

func mergeStrings(layers ...map[string]string) map[string]string {
	var out map[string]string
	for _, layer := range layers {
		for key, value := range layer {
			if out == nil {
				out = make(map[string]string)
			}
			out[key] = value
		}
	}
	return out
}
