// Package regform renders registration forms, processes submissions and
// answers with either inline errors or a confirmation carrying a reference
// number. Most callers start with NewOrchestrator.
package regform

import (
	"context"
	"net/url"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/processor"
	"github.com/goliatone/go-regform/pkg/render"
)

// RenderOptions describes per-request overrides renderers use to prefill
// values or surface validation errors.
type RenderOptions = render.RenderOptions

// Outcome aliases processor.Outcome so callers can switch on Accepted and
// Rejected without importing the processor package.
type Outcome = processor.Outcome

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderForm renders the blank form of the named variant as HTML.
func RenderForm(ctx context.Context, variantName string, options ...orchestrator.Option) ([]byte, error) {
	resp, err := orchestrator.New(options...).Handle(ctx, orchestrator.Request{
		Variant: variantName,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Submit processes posted values for the named variant and returns the
// rendered page together with the outcome.
func Submit(ctx context.Context, variantName string, values url.Values, options ...orchestrator.Option) ([]byte, Outcome, error) {
	resp, err := orchestrator.New(options...).Handle(ctx, orchestrator.Request{
		Variant: variantName,
		Method:  "POST",
		Values:  values,
	})
	if err != nil {
		return nil, nil, err
	}
	return resp.Body, resp.Outcome, nil
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme and variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeManifest renders with manifest instead of the bundled theme.
func WithThemeManifest(manifest *theme.Manifest) orchestrator.Option {
	return orchestrator.WithThemeManifest(manifest)
}
