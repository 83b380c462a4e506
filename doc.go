// Package projectform renders a small project-entry form: a form with title,
// description, and team size inputs mounted above a list of active projects.
// Submissions are validated against the constraints declared in the bundled
// OpenAPI definition; valid entries clear the form and join the list.
package projectform
