package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/processor"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/submission"
	"github.com/goliatone/go-regform/pkg/validation"
)

type stubRenderer struct {
	name        string
	contentType string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return s.contentType }
func (s stubRenderer) Render(context.Context, render.View, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func newRegistry(t *testing.T) *render.Registry {
	t.Helper()
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "html", contentType: "text/html; charset=utf-8"})
	registry.MustRegister(stubRenderer{name: "json", contentType: "application/json"})
	return registry
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	registry := newRegistry(t)
	if err := registry.Register(stubRenderer{name: "html"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if diff := cmp.Diff([]string{"html", "json"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	_, err := newRegistry(t).Get("pdf")
	if !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
}

func TestRegistry_Negotiate(t *testing.T) {
	registry := newRegistry(t)
	cases := []struct {
		accept string
		want   string
	}{
		{accept: "", want: "html"},
		{accept: "*/*", want: "html"},
		{accept: "application/json", want: "json"},
		{accept: "text/plain, application/json;q=0.9", want: "json"},
		{accept: "text/html,application/xhtml+xml", want: "html"},
		{accept: "application/json;q=0.1, text/html", want: "html"},
		{accept: "text/html;q=0.2, application/json;q=0.8", want: "json"},
		{accept: "application/*", want: "json"},
		{accept: "text/html;q=0, */*;q=0.5", want: "json"},
		{accept: "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8", want: "html"},
	}
	for _, tc := range cases {
		renderer, err := registry.Negotiate(tc.accept)
		if err != nil {
			t.Fatalf("negotiate %q: %v", tc.accept, err)
		}
		if renderer.Name() != tc.want {
			t.Fatalf("negotiate %q = %s, want %s", tc.accept, renderer.Name(), tc.want)
		}
	}

	for _, accept := range []string{"application/xml", "image/png, text/plain;q=0.5", "application/json;q=0"} {
		if _, err := registry.Negotiate(accept); !errors.Is(err, render.ErrUnknownRenderer) {
			t.Fatalf("negotiate %q: expected ErrUnknownRenderer, got %v", accept, err)
		}
	}

	if err := registry.SetDefault("json"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	renderer, _ := registry.Negotiate("*/*")
	if renderer.Name() != "json" {
		t.Fatalf("default not applied, got %s", renderer.Name())
	}
	if err := registry.SetDefault("pdf"); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
}

func TestOptionsFor(t *testing.T) {
	original := submission.New(map[string]string{submission.FieldFullName: "J4ne"}, nil)
	rejected := processor.Rejected{
		Submission: original,
		Errors: validation.Result{
			submission.FieldFullName: {Field: submission.FieldFullName, Kind: validation.KindInvalidFormat, Message: " Name should only contain letters and spaces. "},
		},
	}

	opts := render.OptionsFor(rejected, render.RenderOptions{Action: "/forms/basic"})
	if opts.Action != "/forms/basic" {
		t.Fatalf("base options lost: %#v", opts)
	}
	if diff := cmp.Diff(map[string]any{"fullName": "J4ne"}, opts.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	want := map[string][]string{"fullName": {"Name should only contain letters and spaces."}}
	if diff := cmp.Diff(want, opts.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"Please correct the highlighted field below."}, opts.FormErrors); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}

	accepted := render.OptionsFor(processor.Accepted{Submission: original}, opts)
	if accepted.Errors != nil || accepted.FormErrors != nil {
		t.Fatalf("accepted options should clear errors: %#v %#v", accepted.Errors, accepted.FormErrors)
	}
}

func TestRejectedSummary(t *testing.T) {
	result := validation.Result{
		submission.FieldEmail: {Field: submission.FieldEmail, Kind: validation.KindRequiredField},
		submission.FieldPhone: {Field: submission.FieldPhone, Kind: validation.KindInvalidFormat},
	}
	if got := render.RejectedSummary(result); got != "Please correct the 2 highlighted fields below." {
		t.Fatalf("summary = %q", got)
	}
	if got := render.RejectedSummary(nil); got != "" {
		t.Fatalf("empty result summary = %q", got)
	}
}

func TestMergeFormErrors(t *testing.T) {
	got := render.MergeFormErrors([]string{" a ", "b"}, "a", "", "c")
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}
