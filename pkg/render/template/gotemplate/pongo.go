package gotemplate

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/goccy/go-json"
)

// pongoEngine renders through a private pongo2 template set.
type pongoEngine struct {
	set *pongo2.TemplateSet
	ext string

	mu     sync.RWMutex
	cached map[string]*pongo2.Template
}

func newPongo(s settings) (*pongoEngine, error) {
	var loaders []pongo2.TemplateLoader
	if s.dir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(s.dir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: template dir %q: %w", s.dir, err)
		}
		loaders = append(loaders, local)
	}
	if s.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(s.files))
	}

	filters := map[string]pongo2.FilterFunction{"trim": trimFilter}
	for name, fn := range s.filters {
		filters[name] = fn
	}
	for name, fn := range filters {
		if pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("gotemplate: filter %q: %w", name, err)
		}
	}

	engine := &pongoEngine{
		set:    pongo2.NewSet("projectform", loaders...),
		ext:    s.ext,
		cached: map[string]*pongo2.Template{},
	}
	if err := engine.GlobalContext(s.globals); err != nil {
		return nil, err
	}
	return engine, nil
}

func (e *pongoEngine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

func (e *pongoEngine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.run(tpl, name, data, out)
}

func (e *pongoEngine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.run(tpl, "inline template", data, out)
}

func (e *pongoEngine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

func (e *pongoEngine) GlobalContext(data any) error {
	if data == nil {
		return nil
	}
	values, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: global data: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(values)
	return nil
}

func (e *pongoEngine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tpl, ok := e.cached[path]
	e.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tpl, ok := e.cached[path]; ok {
		return tpl, nil
	}
	tpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", path, err)
	}
	e.cached[path] = tpl
	return tpl, nil
}

func (e *pongoEngine) run(tpl *pongo2.Template, label string, data any, out []io.Writer) (string, error) {
	values, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s data: %w", label, err)
	}

	e.mu.RLock()
	rendered, err := tpl.Execute(values)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// toContext passes maps through and flattens anything else through JSON, so
// structs expose their tagged names.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	values := pongo2.Context{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func trimFilter(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
