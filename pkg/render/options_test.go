package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-projectform/pkg/dom"
	"github.com/goliatone/go-projectform/pkg/render"
)

func TestHiddenInputsReplaceAndSort(t *testing.T) {
	opts := render.RenderOptions{}.
		WithHidden("version", "4").
		WithHidden("_csrf", "old").
		WithHidden("  ", "skip").
		WithHidden(" _csrf ", "token123")

	want := []render.HiddenField{
		{Name: "version", Value: "4"},
		{Name: "_csrf", Value: "token123"},
	}
	if diff := cmp.Diff(want, opts.Hidden); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}

	var got []string
	for _, input := range opts.HiddenInputs() {
		markup, err := dom.RenderString(input)
		if err != nil {
			t.Fatalf("render input: %v", err)
		}
		got = append(got, markup)
	}
	wantMarkup := []string{
		`<input type="hidden" name="_csrf" value="token123"/>`,
		`<input type="hidden" name="version" value="4"/>`,
	}
	if diff := cmp.Diff(wantMarkup, got); diff != "" {
		t.Fatalf("hidden inputs mismatch (-want +got):\n%s", diff)
	}
}

func TestWithHiddenLeavesOriginalUntouched(t *testing.T) {
	base := render.RenderOptions{}.WithHidden("_csrf", "a")
	_ = base.WithHidden("_csrf", "b")
	if base.Hidden[0].Value != "a" {
		t.Fatalf("original options mutated: %+v", base.Hidden)
	}
}

func TestAlertMessages(t *testing.T) {
	opts := render.RenderOptions{Alerts: []string{" Error ", "Error", "  ", "Saved"}}
	if diff := cmp.Diff([]string{"Error", "Saved"}, opts.AlertMessages()); diff != "" {
		t.Fatalf("alerts mismatch (-want +got):\n%s", diff)
	}
	if (render.RenderOptions{}).AlertMessages() != nil {
		t.Fatalf("expected nil for empty input")
	}
}
