package dom

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/net/html"
)

// Event is dispatched to listeners registered on a node.
type Event struct {
	Type   string
	Target *html.Node

	ctx              context.Context
	defaultPrevented bool
}

// NewEvent builds an event of the given type bound to ctx.
func NewEvent(ctx context.Context, eventType string) *Event {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Event{Type: eventType, ctx: ctx}
}

// Context returns the context the event was dispatched with.
func (e *Event) Context() context.Context {
	if e == nil || e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// PreventDefault marks the default action as suppressed.
func (e *Event) PreventDefault() {
	if e != nil {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether a listener suppressed the default action.
func (e *Event) DefaultPrevented() bool {
	return e != nil && e.defaultPrevented
}

// Listener handles a dispatched event. Listeners are plain funcs, so binding
// a method value (obj.method) fixes its receiver at registration time.
type Listener func(*Event)

// Events keeps listeners keyed by node and event type.
type Events struct {
	mu        sync.RWMutex
	listeners map[*html.Node]map[string][]Listener
}

// NewEvents creates an empty listener table.
func NewEvents() *Events {
	return &Events{listeners: make(map[*html.Node]map[string][]Listener)}
}

// Listen registers fn for eventType on node.
func (e *Events) Listen(node *html.Node, eventType string, fn Listener) error {
	if node == nil {
		return ErrNilNode
	}
	if eventType == "" || fn == nil {
		return errors.New("dom: event type and listener required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	byType, ok := e.listeners[node]
	if !ok {
		byType = make(map[string][]Listener)
		e.listeners[node] = byType
	}
	byType[eventType] = append(byType[eventType], fn)
	return nil
}

// Dispatch runs the listeners registered for ev.Type on node, in
// registration order, and returns false when any of them called
// PreventDefault. Events do not bubble.
func (e *Events) Dispatch(node *html.Node, ev *Event) bool {
	if node == nil || ev == nil {
		return true
	}
	ev.Target = node

	e.mu.RLock()
	listeners := append([]Listener(nil), e.listeners[node][ev.Type]...)
	e.mu.RUnlock()

	for _, fn := range listeners {
		fn(ev)
	}
	return !ev.DefaultPrevented()
}

// Count returns how many listeners are registered for eventType on node.
func (e *Events) Count(node *html.Node, eventType string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[node][eventType])
}
