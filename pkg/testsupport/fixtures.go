package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-projectform/pkg/model"
)

// ProjectFormModel returns the form model the bundled OpenAPI document and UI
// schema produce, so package tests can run without the loading pipeline.
func ProjectFormModel() pkgmodel.FormModel {
	return pkgmodel.FormModel{
		OperationID: "createProject",
		Endpoint:    "/projects",
		Method:      "POST",
		Summary:     "Add a project",
		Metadata: map[string]string{
			"summary":      "Add a project",
			"layout.title": "Projects",
			"submitLabel":  "ADD PROJECT",
			"list.heading": "ACTIVE PROJECTS",
		},
		Fields: []pkgmodel.Field{
			{Name: "title", Type: pkgmodel.FieldTypeString, Required: true, Label: "Title"},
			{
				Name:     "description",
				Type:     pkgmodel.FieldTypeString,
				Required: true,
				Label:    "Description",
				Validations: []pkgmodel.ValidationRule{
					{Kind: pkgmodel.ValidationRuleMinLength, Params: map[string]string{"value": "5"}},
				},
				UIHints: map[string]string{"input": "textarea", "rows": "3"},
			},
			{
				Name:     "people",
				Type:     pkgmodel.FieldTypeInteger,
				Required: true,
				Label:    "People",
				Validations: []pkgmodel.ValidationRule{
					{Kind: pkgmodel.ValidationRuleMin, Params: map[string]string{"value": "1"}},
					{Kind: pkgmodel.ValidationRuleMax, Params: map[string]string{"value": "10"}},
				},
				UIHints: map[string]string{"step": "1"},
			},
		},
	}
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
