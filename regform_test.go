package regform_test

import (
	"context"
	"io/fs"
	"net/url"
	"strings"
	"testing"

	regform "github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/pkg/processor"
)

func TestRenderForm(t *testing.T) {
	out, err := regform.RenderForm(context.Background(), "academic")
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	if !strings.Contains(string(out), `name="cetNumber"`) {
		t.Fatalf("academic form should include the CET number field")
	}
}

func TestSubmit(t *testing.T) {
	_, outcome, err := regform.Submit(context.Background(), "basic", url.Values{
		"fullName": {"Jane Doe"},
		"email":    {"jane@example.com"},
		"program":  {"CS"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	accepted, ok := outcome.(processor.Accepted)
	if !ok {
		t.Fatalf("expected acceptance, got %#v", outcome)
	}
	if accepted.Program.Name != "Computer Science" {
		t.Fatalf("program = %q", accepted.Program.Name)
	}
}

func TestEmbeddedFS(t *testing.T) {
	if _, err := fs.Stat(regform.EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("form template missing: %v", err)
	}
	if _, err := fs.Stat(regform.EmbeddedAssets(), "regform.css"); err != nil {
		t.Fatalf("stylesheet missing: %v", err)
	}
	if _, err := fs.Stat(regform.EmbeddedVariants(), "basic.yaml"); err != nil {
		t.Fatalf("basic variant missing: %v", err)
	}
}
