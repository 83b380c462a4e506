package project

import (
	"fmt"

	"github.com/goliatone/go-projectform/pkg/validation"
)

// Draft is a validated project entry.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	People      int    `json:"people"`
}

// Assigned describes the team size, for example "1 person assigned".
func (d Draft) Assigned() string {
	if d.People == 1 {
		return "1 person assigned"
	}
	return fmt.Sprintf("%d persons assigned", d.People)
}

// Normalize trims surrounding whitespace from the text fields.
func (d Draft) Normalize() Draft {
	d.Title = validation.Trim(d.Title)
	d.Description = validation.Trim(d.Description)
	return d
}
