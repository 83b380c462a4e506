package jsonout_test

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-projectform/pkg/render"
	"github.com/goliatone/go-projectform/pkg/renderers/jsonout"
	"github.com/goliatone/go-projectform/pkg/testsupport"
)

func TestRenderSnapshot(t *testing.T) {
	page := render.Page{
		Form: testsupport.ProjectFormModel(),
		Projects: []render.Project{
			{ID: "p1", Title: "House", Description: "Build a house", People: 5},
		},
	}

	raw, err := jsonout.New().Render(context.Background(), page, render.RenderOptions{Alerts: []string{"Error"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got jsonout.Snapshot
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := jsonout.Snapshot{
		OperationID: "createProject",
		Endpoint:    "/projects",
		Method:      "POST",
		Fields: []jsonout.Field{
			{Name: "title", Type: "string", Label: "Title", Required: true},
			{Name: "description", Type: "string", Label: "Description", Required: true, Rules: map[string]string{"minLength": "5"}},
			{Name: "people", Type: "integer", Label: "People", Required: true, Rules: map[string]string{"min": "1", "max": "10"}},
		},
		Projects: page.Projects,
		Alerts:   []string{"Error"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderEmptyProjectsIsArray(t *testing.T) {
	raw, err := jsonout.New().Render(context.Background(), render.Page{Form: testsupport.ProjectFormModel()}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := doc["projects"].([]any); !ok {
		t.Fatalf("expected projects array, got %T", doc["projects"])
	}
	if _, ok := doc["alerts"]; ok {
		t.Fatalf("alerts must be omitted when empty")
	}
}
