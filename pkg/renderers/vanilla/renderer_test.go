package vanilla_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/net/html"

	"github.com/goliatone/go-projectform/pkg/dom"
	"github.com/goliatone/go-projectform/pkg/form"
	"github.com/goliatone/go-projectform/pkg/render"
	"github.com/goliatone/go-projectform/pkg/renderers/vanilla"
	"github.com/goliatone/go-projectform/pkg/testsupport"
)

func newPage(t *testing.T) render.Page {
	t.Helper()
	root := dom.Element("div", []html.Attribute{dom.Attr("id", "app")})
	ctrl, err := form.New(root, form.WithForm(testsupport.ProjectFormModel()))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return render.Page{Form: ctrl.Form(), App: root}
}

func TestRenderPageLayout(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	page := newPage(t)

	out, err := renderer.Render(context.Background(), page, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)

	for _, want := range []string{
		"<title>Projects</title>",
		`<div id="app"><form action="/projects" method="post" novalidate="" id="user-input">`,
		`<textarea id="description"`,
		`<section class="projects" id="active-projects">`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("no alerts expected:\n%s", got)
	}
	if renderer.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("content type = %q", renderer.ContentType())
	}
}

func TestRenderAlertsAndHiddenFieldsLeavePageUntouched(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	page := newPage(t)
	before, err := dom.RenderString(page.App)
	if err != nil {
		t.Fatalf("render tree: %v", err)
	}

	opts := render.RenderOptions{Alerts: []string{"Error", " Error ", "</script>"}}
	out, err := renderer.Render(context.Background(), page, opts.WithHidden("_csrf", "stale").WithHidden("_csrf", "tok"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)

	if !strings.Contains(got, `<input type="hidden" name="_csrf" value="tok"/>`) {
		t.Fatalf("expected hidden csrf input:\n%s", got)
	}
	if strings.Contains(got, "stale") {
		t.Fatalf("replaced hidden value rendered:\n%s", got)
	}
	if strings.Count(got, `<script>alert("Error");</script>`) != 1 {
		t.Fatalf("expected one deduplicated alert:\n%s", got)
	}
	if strings.Contains(got, `alert("</script>")`) {
		t.Fatalf("alert text must be escaped:\n%s", got)
	}

	after, err := dom.RenderString(page.App)
	if err != nil {
		t.Fatalf("render tree: %v", err)
	}
	if before != after {
		t.Fatalf("render mutated the live tree")
	}
}

func TestRenderAppliesTheme(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	selector, err := render.NewManifestSelector("", render.DefaultManifest())
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	cfg, err := render.ResolveTheme(selector, "", "dark", render.DefaultFallbacks())
	if err != nil {
		t.Fatalf("resolve theme: %v", err)
	}

	out, err := renderer.Render(context.Background(), newPage(t), render.RenderOptions{Theme: cfg, Title: "Board"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)

	for _, want := range []string{
		"<title>Board</title>",
		`<link rel="stylesheet" href="/assets/app.css">`,
		"--surface: #1f1f24;",
		`data-variant="dark"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestRenderUsesCustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"templates/page.tmpl": {Data: []byte(`<main>{{ title }}|{{ app|safe }}</main>`)},
	}
	renderer, err := vanilla.New(vanilla.WithTemplatesFS(files))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	root := dom.Element("div", nil, dom.Element("p", nil, dom.Text("hi")))

	out, err := renderer.Render(context.Background(), render.Page{App: root}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "<main>"+vanilla.DefaultTitle+"|<p>hi</p></main>" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderOnGoTemplateEngine(t *testing.T) {
	files := fstest.MapFS{
		"templates/page.tmpl": {Data: []byte(`<main>{{ title|lowerfirst }}|{{ app|safe }}</main>`)},
	}
	renderer, err := vanilla.New(vanilla.WithTemplatesFS(files), vanilla.WithTemplateEngine("go-template"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	root := dom.Element("div", nil, dom.Element("p", nil, dom.Text("hi")))

	out, err := renderer.Render(context.Background(), render.Page{App: root}, render.RenderOptions{Title: "Sprint"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "<main>sprint|<p>hi</p></main>" {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := vanilla.New(vanilla.WithTemplateEngine("mustache")); err == nil {
		t.Fatalf("expected unknown engine error")
	}
}

func TestRenderRequiresTree(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Render(context.Background(), render.Page{}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for missing tree")
	}
}
