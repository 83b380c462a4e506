package project

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"

	"github.com/goliatone/go-projectform/pkg/dom"
)

// ErrAlreadyAttached is returned when attaching a list a second time.
var ErrAlreadyAttached = errors.New("project: list already attached")

// List owns the project section and the items added to it, in insertion
// order.
type List struct {
	element  *html.Node
	listRoot *html.Node
	items    []*Item
	attached bool
}

// NewList instantiates the project-list template and locates its ul.
func NewList(templates *dom.Templates, heading string) (*List, error) {
	if templates == nil {
		return nil, fmt.Errorf("project: new list: %w", dom.ErrNilNode)
	}
	element, err := templates.InstantiateElement(TemplateList)
	if err != nil {
		return nil, fmt.Errorf("project: new list: %w", err)
	}

	listRoot := dom.ByTag(element, "ul")
	if listRoot == nil {
		return nil, errors.New("project: list template has no ul")
	}

	dom.SetAttr(element, "id", "active-projects")
	dom.SetAttr(listRoot, "id", "active-projects-list")
	dom.SetText(dom.ByTag(element, "h2"), heading)

	return &List{element: element, listRoot: listRoot}, nil
}

// AddProject appends item to the list and to the visible ul.
func (l *List) AddProject(item *Item) error {
	if item == nil || item.Element() == nil {
		return fmt.Errorf("project: add project: %w", dom.ErrNilNode)
	}
	if err := dom.Append(l.listRoot, item.Element()); err != nil {
		return fmt.Errorf("project: add project: %w", err)
	}
	l.items = append(l.items, item)
	return nil
}

// Attach inserts the section as the last child of target. It succeeds once.
func (l *List) Attach(target *html.Node) error {
	if l.attached {
		return ErrAlreadyAttached
	}
	if err := dom.Append(target, l.element); err != nil {
		return fmt.Errorf("project: attach list: %w", err)
	}
	l.attached = true
	return nil
}

// Items returns the items in insertion order.
func (l *List) Items() []*Item {
	return append([]*Item(nil), l.items...)
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// Element returns the section node.
func (l *List) Element() *html.Node { return l.element }
