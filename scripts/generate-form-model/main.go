package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-projectform"
	pkgopenapi "github.com/goliatone/go-projectform/pkg/openapi"
	"github.com/goliatone/go-projectform/pkg/orchestrator"
)

// Snapshots the form model built from an OpenAPI definition so fixture
// changes show up as reviewable diffs.
func main() {
	var (
		schemaPath  = flag.String("schema", "", "OpenAPI definition path (defaults to the bundled definition)")
		uiSchemaDir = flag.String("uischema", "", "directory holding UI schema files")
		operationID = flag.String("operation", "createProject", "operation ID to snapshot")
		outputPath  = flag.String("output", "pkg/testsupport/testdata/form_model.json", "output path for the serialized form model")
	)
	flag.Parse()

	var options []orchestrator.Option
	if *uiSchemaDir != "" {
		options = append(options, orchestrator.WithUISchemaFS(os.DirFS(*uiSchemaDir)))
	}
	orch := projectform.NewOrchestrator(options...)

	req := orchestrator.Request{OperationID: *operationID}
	if *schemaPath != "" {
		req.Source = pkgopenapi.SourceFromFile(*schemaPath)
	}
	fm, err := orch.Form(context.Background(), req)
	if err != nil {
		exitErr(err)
	}

	payload, err := json.MarshalIndent(fm, "", "  ")
	if err != nil {
		exitErr(err)
	}
	if err := os.MkdirAll(filepath.Dir(*outputPath), 0o755); err != nil {
		exitErr(err)
	}
	if err := os.WriteFile(*outputPath, append(payload, '\n'), 0o644); err != nil {
		exitErr(err)
	}
	fmt.Printf("wrote %s\n", *outputPath)
}

func exitErr(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
