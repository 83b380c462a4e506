package dom

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// ErrUnknownTemplate is returned when instantiating an unregistered template.
var ErrUnknownTemplate = errors.New("dom: template not registered")

// Templates stores inert prototype fragments by name. Instantiate hands out
// deep clones so live trees never share nodes with the prototype.
type Templates struct {
	mu         sync.RWMutex
	prototypes map[string]*html.Node
}

// NewTemplates creates an empty template set.
func NewTemplates() *Templates {
	return &Templates{prototypes: make(map[string]*html.Node)}
}

// Register stores a prototype under name. The node is cloned on the way in
// so later caller mutations do not leak into instances. Duplicate names
// return an error.
func (t *Templates) Register(name string, prototype *html.Node) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("dom: template name is required")
	}
	if prototype == nil {
		return fmt.Errorf("dom: template %q: %w", name, ErrNilNode)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.prototypes[name]; exists {
		return fmt.Errorf("dom: template %q already registered", name)
	}
	t.prototypes[name] = Clone(prototype)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (t *Templates) MustRegister(name string, prototype *html.Node) {
	if err := t.Register(name, prototype); err != nil {
		panic(err)
	}
}

// Instantiate returns a detached clone of the named prototype.
func (t *Templates) Instantiate(name string) (*html.Node, error) {
	t.mu.RLock()
	prototype, ok := t.prototypes[name]
	t.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return Clone(prototype), nil
}

// InstantiateElement clones the named prototype and returns its first
// element, mirroring how template content is usually consumed.
func (t *Templates) InstantiateElement(name string) (*html.Node, error) {
	frag, err := t.Instantiate(name)
	if err != nil {
		return nil, err
	}
	if frag.Type == html.ElementNode {
		return frag, nil
	}
	el := FirstElement(frag)
	if el == nil {
		return nil, fmt.Errorf("dom: template %q has no element content", name)
	}
	Detach(el)
	return el, nil
}

// Has reports whether a template is registered.
func (t *Templates) Has(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.prototypes[name]
	return ok
}

// Names lists registered template names in sorted order.
func (t *Templates) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.prototypes))
	for name := range t.prototypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
