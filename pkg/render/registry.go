package render

import (
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"
	"sync"
)

// ErrNoRenderer is returned when no registered renderer matches a lookup.
var ErrNoRenderer = errors.New("render: no renderer")

// Registry holds the page renderers in registration order. Lookups go by
// renderer name (render --renderer) or by the media type a response needs.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
}

type entry struct {
	name      string
	mediaType string
	renderer  Renderer
}

// NewRegistry returns a registry holding renderers, registered in order.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{}
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds renderer under its name and the media type of its content
// type. Names must be unique; several renderers may share a media type, in
// which case the first registered answers ForMediaType.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return errors.New("render: renderer name is required")
	}
	mediaType, _, err := mime.ParseMediaType(renderer.ContentType())
	if err != nil {
		return fmt.Errorf("render: renderer %q content type: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.name == name {
			return fmt.Errorf("render: renderer %q already registered", name)
		}
	}
	r.entries = append(r.entries, entry{name: name, mediaType: mediaType, renderer: renderer})
	return nil
}

// MustRegister is Register for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered as name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.name == name {
			return e.renderer, nil
		}
	}
	return nil, fmt.Errorf("%w named %q", ErrNoRenderer, name)
}

// ForMediaType returns the first renderer producing mediaType. Parameters
// such as charset are ignored, and "type/*" or "*/*" match any subtype.
func (r *Registry) ForMediaType(mediaType string) (Renderer, error) {
	want, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return nil, fmt.Errorf("render: media type %q: %w", mediaType, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if mediaTypeMatches(want, e.mediaType) {
			return e.renderer, nil
		}
	}
	return nil, fmt.Errorf("%w for %s", ErrNoRenderer, want)
}

// First returns the earliest registered renderer.
func (r *Registry) First() (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.entries) == 0 {
		return nil, fmt.Errorf("%w registered", ErrNoRenderer)
	}
	return r.entries[0].renderer, nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}

func mediaTypeMatches(pattern, mediaType string) bool {
	if pattern == "*/*" || pattern == mediaType {
		return true
	}
	prefix, ok := strings.CutSuffix(pattern, "/*")
	return ok && strings.HasPrefix(mediaType, prefix+"/")
}
