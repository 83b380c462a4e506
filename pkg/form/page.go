package form

import "github.com/goliatone/go-projectform/pkg/render"

// Page snapshots the mounted tree and the listed projects for renderers.
func (c *Controller) Page() render.Page {
	items := c.list.Items()
	projects := make([]render.Project, 0, len(items))
	for _, item := range items {
		draft := item.Draft()
		projects = append(projects, render.Project{
			ID:          item.ID(),
			Title:       draft.Title,
			Description: draft.Description,
			People:      draft.People,
		})
	}
	return render.Page{Form: c.form, App: c.root, Projects: projects}
}
