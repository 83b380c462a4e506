package project

import (
	"fmt"

	"github.com/google/uuid"
	xhtml "golang.org/x/net/html"

	"github.com/goliatone/go-projectform/pkg/dom"
)

// Item is one rendered project entry.
type Item struct {
	id      string
	draft   Draft
	element *xhtml.Node
}

// NewItem instantiates the single-project template and fills it from draft.
// The text is kept as entered; rendering escapes it.
func NewItem(templates *dom.Templates, draft Draft) (*Item, error) {
	if templates == nil {
		return nil, fmt.Errorf("project: new item: %w", dom.ErrNilNode)
	}
	element, err := templates.InstantiateElement(TemplateItem)
	if err != nil {
		return nil, fmt.Errorf("project: new item: %w", err)
	}

	id := uuid.NewString()
	dom.SetAttr(element, "id", id)
	dom.SetText(dom.ByTag(element, "h2"), draft.Title)
	dom.SetText(dom.ByTag(element, "h3"), draft.Assigned())
	dom.SetText(dom.ByTag(element, "p"), draft.Description)

	return &Item{id: id, draft: draft, element: element}, nil
}

// ID returns the identifier assigned to the item element.
func (i *Item) ID() string { return i.id }

// Draft returns the entry the item was built from.
func (i *Item) Draft() Draft { return i.draft }

// Element returns the item's root node.
func (i *Item) Element() *xhtml.Node { return i.element }
