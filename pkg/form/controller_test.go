package form_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-projectform/pkg/dom"
	"github.com/goliatone/go-projectform/pkg/form"
	"github.com/goliatone/go-projectform/pkg/project"
	"github.com/goliatone/go-projectform/pkg/render"
	"github.com/goliatone/go-projectform/pkg/testsupport"
)

type recordingAlerter struct {
	messages []string
}

func (r *recordingAlerter) Alert(_ context.Context, message string) {
	r.messages = append(r.messages, message)
}

func newController(t *testing.T) (*form.Controller, *recordingAlerter, *html.Node) {
	t.Helper()

	root := dom.Element("div", []html.Attribute{dom.Attr("id", "app")})
	alerter := &recordingAlerter{}
	ctrl, err := form.New(root,
		form.WithForm(testsupport.ProjectFormModel()),
		form.WithAlerter(alerter),
	)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl, alerter, root
}

func TestNewMountsFormThenList(t *testing.T) {
	ctrl, _, root := newController(t)

	first := dom.FirstElement(root)
	if first != ctrl.Element() || dom.GetAttr(first, "id") != form.FormID {
		t.Fatalf("expected form#%s as first child", form.FormID)
	}
	if first.NextSibling != ctrl.List().Element() {
		t.Fatalf("expected project list after the form")
	}
	if ctrl.State() != form.StateIdle {
		t.Fatalf("state = %s", ctrl.State())
	}
	if ctrl.Events().Count(ctrl.Element(), form.EventSubmit) != 1 {
		t.Fatalf("expected one submit listener")
	}
}

func TestNewRequiresRootAndForm(t *testing.T) {
	if _, err := form.New(nil, form.WithForm(testsupport.ProjectFormModel())); !errors.Is(err, dom.ErrNilNode) {
		t.Fatalf("expected ErrNilNode, got %v", err)
	}
	if _, err := form.New(dom.Element("div", nil)); err == nil {
		t.Fatalf("expected error without form model")
	}

	model := testsupport.ProjectFormModel()
	model.Fields = model.Fields[:2]
	if _, err := form.New(dom.Element("div", nil), form.WithForm(model)); err == nil {
		t.Fatalf("expected error when the people field is missing")
	}
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		values map[string]string
	}{
		{"empty title", map[string]string{"title": "", "description": "Build a house", "people": "3"}},
		{"short description", map[string]string{"title": "House", "description": "Shrt", "people": "3"}},
		{"too many people", map[string]string{"title": "House", "description": "Build a house", "people": "11"}},
		{"no people", map[string]string{"title": "House", "description": "Build a house", "people": "0"}},
		{"fractional people", map[string]string{"title": "House", "description": "Build a house", "people": "2.5"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl, alerter, _ := newController(t)

			_, err := ctrl.Submit(context.Background(), tc.values)
			if !errors.Is(err, form.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if diff := cmp.Diff([]string{"Error"}, alerter.messages); diff != "" {
				t.Fatalf("alerts mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.values, ctrl.Values()); diff != "" {
				t.Fatalf("inputs must stay untouched (-want +got):\n%s", diff)
			}
			if ctrl.List().Len() != 0 {
				t.Fatalf("no item may be added on failure")
			}
			if ctrl.State() != form.StateIdle {
				t.Fatalf("state = %s after failure", ctrl.State())
			}
		})
	}
}

func TestSubmitAcceptsValidInput(t *testing.T) {
	ctrl, alerter, _ := newController(t)

	draft, err := ctrl.Submit(context.Background(), map[string]string{
		"title":       "House",
		"description": "Build a house",
		"people":      "5",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	want := project.Draft{Title: "House", Description: "Build a house", People: 5}
	if diff := cmp.Diff(want, draft); diff != "" {
		t.Fatalf("draft mismatch (-want +got):\n%s", diff)
	}
	if len(alerter.messages) != 0 {
		t.Fatalf("unexpected alerts %v", alerter.messages)
	}
	if diff := cmp.Diff(map[string]string{"title": "", "description": "", "people": ""}, ctrl.Values()); diff != "" {
		t.Fatalf("inputs must be cleared (-want +got):\n%s", diff)
	}

	items := ctrl.List().Items()
	if len(items) != 1 || items[0].Draft() != want {
		t.Fatalf("expected the draft in the list, got %d items", len(items))
	}
	li := dom.ByTag(dom.ByTag(ctrl.List().Element(), "ul"), "li")
	if li == nil || dom.TextContent(dom.ByTag(li, "h2")) != "House" {
		t.Fatalf("item not visible in the list")
	}
}

func TestDispatchedSubmitUsesBoundReceiver(t *testing.T) {
	ctrl, _, _ := newController(t)

	for name, value := range map[string]string{"title": "Boat", "description": "Build a boat", "people": "2"} {
		dom.SetValue(dom.ByID(ctrl.Element(), name), value)
	}

	proceed := ctrl.Events().Dispatch(ctrl.Element(), dom.NewEvent(context.Background(), form.EventSubmit))
	if proceed {
		t.Fatalf("submit default action must be prevented")
	}
	if ctrl.List().Len() != 1 {
		t.Fatalf("expected dispatched submit to add an item")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	ctrl, _, _ := newController(t)
	dom.SetValue(dom.ByID(ctrl.Element(), "title"), "House")
	dom.SetValue(dom.ByID(ctrl.Element(), "description"), "Build a house")

	empty := map[string]string{"title": "", "description": "", "people": ""}
	for i := 0; i < 2; i++ {
		ctrl.Clear()
		if diff := cmp.Diff(empty, ctrl.Values()); diff != "" {
			t.Fatalf("clear #%d (-want +got):\n%s", i+1, diff)
		}
	}
}

func TestSubmitHonoursCancelledContext(t *testing.T) {
	ctrl, alerter, _ := newController(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	values := map[string]string{"title": "House", "description": "Build a house", "people": "5"}
	if _, err := ctrl.Submit(ctx, values); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if ctrl.List().Len() != 0 || len(alerter.messages) != 0 {
		t.Fatalf("cancelled submit must not mutate state")
	}
	if diff := cmp.Diff(values, ctrl.Values()); diff != "" {
		t.Fatalf("inputs must keep typed values (-want +got):\n%s", diff)
	}
}

func TestPageSnapshotsListedProjects(t *testing.T) {
	ctrl, _, root := newController(t)

	if _, err := ctrl.Submit(context.Background(), map[string]string{
		form.FieldTitle:       "House",
		form.FieldDescription: "Build a house",
		form.FieldPeople:      "5",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	page := ctrl.Page()
	if page.App != root {
		t.Fatalf("expected page tree to be the mounted root")
	}
	if len(page.Projects) != 1 || page.Projects[0].ID == "" {
		t.Fatalf("unexpected projects %+v", page.Projects)
	}
	page.Projects[0].ID = ""
	want := render.Project{Title: "House", Description: "Build a house", People: 5}
	if diff := cmp.Diff(want, page.Projects[0]); diff != "" {
		t.Fatalf("project mismatch (-want +got):\n%s", diff)
	}
}
