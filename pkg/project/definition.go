package project

import (
	_ "embed"

	pkgopenapi "github.com/goliatone/go-projectform/pkg/openapi"
)

// OperationID names the operation the project form is generated from.
const OperationID = "createProject"

//go:embed definition/projects.openapi.yaml
var definition []byte

// Definition returns the bundled OpenAPI document describing project input.
func Definition() pkgopenapi.Document {
	return pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS("definition/projects.openapi.yaml"), definition)
}
