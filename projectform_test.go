package projectform

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/net/html"

	"github.com/goliatone/go-projectform/pkg/dom"
	"github.com/goliatone/go-projectform/pkg/form"
	pkgopenapi "github.com/goliatone/go-projectform/pkg/openapi"
)

func TestMountSubmitAndRender(t *testing.T) {
	ctx := context.Background()
	root := dom.Element("div", []html.Attribute{dom.Attr("id", "app")})

	ctrl, err := Mount(ctx, root)
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if _, err := ctrl.Submit(ctx, map[string]string{
		form.FieldTitle:       "House",
		form.FieldDescription: "Build a house",
		form.FieldPeople:      "1",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	out, err := RenderHTML(ctx, ctrl, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)
	for _, want := range []string{
		"<title>Projects</title>",
		"<h2>House</h2>",
		"<h3>1 person assigned</h3>",
		"<p>Build a house</p>",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestEmbeddedBundles(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
	if _, err := fs.ReadFile(AssetsFS(), "app.css"); err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
}

func TestLoaderAndParserReadFSDocuments(t *testing.T) {
	ctx := context.Background()
	files := fstest.MapFS{"defs/projects.yaml": {Data: []byte(`
openapi: 3.0.3
info: {title: Sprint, version: 1.0.0}
paths:
  /sprints:
    post:
      operationId: createSprint
      requestBody:
        content:
          application/x-www-form-urlencoded:
            schema:
              type: object
              required: [goal]
              properties:
                goal: {type: string, maxLength: 80}
      responses:
        "303": {description: created}
`)}}

	doc, err := NewLoader(pkgopenapi.WithFileSystem(files)).Load(ctx, pkgopenapi.SourceFromFS("defs/projects.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	operations, err := NewParser(pkgopenapi.WithValidation(false)).Operations(ctx, doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	op, ok := operations["createSprint"]
	if !ok || !op.Body.IsRequired("goal") {
		t.Fatalf("unexpected operations %+v", operations)
	}
	if got := *op.Body.Properties["goal"].MaxLength; got != 80 {
		t.Fatalf("goal maxLength = %d", got)
	}
}
