package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSurveyDriverInfoWritesToOut(t *testing.T) {
	out, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer out.Close()

	d := NewSurveyDriver(os.Stdin, out, out)
	if err := d.Info(context.Background(), "House (5 persons assigned)"); err != nil {
		t.Fatalf("info: %v", err)
	}

	got, err := os.ReadFile(out.Name())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "House (5 persons assigned)\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestSurveyDriverHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := NewSurveyDriver(os.Stdin, os.Stdout, os.Stderr)

	if _, err := d.Ask(ctx, Question{Field: "title", Message: "Title"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("ask: expected context.Canceled, got %v", err)
	}
	if _, err := d.Confirm(ctx, "Add another?", true); !errors.Is(err, context.Canceled) {
		t.Fatalf("confirm: expected context.Canceled, got %v", err)
	}
	if err := d.Info(ctx, "hi"); !errors.Is(err, context.Canceled) {
		t.Fatalf("info: expected context.Canceled, got %v", err)
	}
}
