package render

import (
	"context"

	"golang.org/x/net/html"

	"github.com/goliatone/go-projectform/pkg/model"
)

// Renderer converts a page snapshot into a byte representation (HTML, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, options RenderOptions) ([]byte, error)
}

// Page is the state a renderer works from: the form model, the live element
// tree mounted under the app root, and a snapshot of listed projects.
type Page struct {
	Form     model.FormModel
	App      *html.Node
	Projects []Project
}

// Project is a rendered list entry.
type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	People      int    `json:"people"`
}
