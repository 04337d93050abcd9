package orchestrator

import (
	"context"
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/render"
)

func TestOrchestrator_PassesThemeConfigToRenderer(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Templates: map[string]string{
			"forms.input": "themes/acme/input.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"stylesheet": "theme.dark.css",
					},
				},
			},
		},
	}

	selection := &theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: manifest,
	}
	selector := &stubThemeSelector{selection: selection}
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
	)

	_, err := orch.Handle(context.Background(), Request{
		ThemeName:    "acme",
		ThemeVariant: "dark",
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(selector.calls) != 1 {
		t.Fatalf("expected selector called once, got %d", len(selector.calls))
	}
	if selector.calls[0].name != "acme" || selector.calls[0].variant != "dark" {
		t.Fatalf("unexpected selector args: %+v", selector.calls[0])
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("theme mismatch: %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("tokens not merged with variant override, got %s", cfg.Tokens["brand"])
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css vars not derived from variant tokens, got %s", cfg.CSSVars["--brand"])
	}
	if cfg.Partials["forms.input"] != "themes/acme/input.tmpl" {
		t.Fatalf("expected base template, got %s", cfg.Partials["forms.input"])
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("unexpected stylesheet url: %s", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("unknown assets should resolve empty, got %s", got)
	}
}

func TestOrchestrator_DefaultManifest(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(WithRegistry(registry), WithTheme("", "dark"))
	if _, err := orch.Handle(context.Background(), Request{}); err != nil {
		t.Fatalf("handle: %v", err)
	}

	cfg := renderer.options.Theme
	if cfg == nil || cfg.Theme != DefaultThemeName || cfg.Variant != "dark" {
		t.Fatalf("unexpected theme config: %#v", cfg)
	}
	if cfg.CSSVars["--surface"] != "#111827" || cfg.CSSVars["--accent"] != "#4f46e5" {
		t.Fatalf("unexpected css vars: %#v", cfg.CSSVars)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/regform.css" {
		t.Fatalf("unexpected stylesheet url: %s", got)
	}

	if _, err := orch.Handle(context.Background(), Request{ThemeVariant: "sepia"}); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme for unknown theme variant, got %v", err)
	}
	if _, err := orch.Handle(context.Background(), Request{ThemeName: "other"}); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme for unknown theme, got %v", err)
	}
}

func TestOrchestrator_WithoutTheme(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(WithRegistry(registry), WithThemeManifest(nil))
	if _, err := orch.Handle(context.Background(), Request{}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if renderer.options.Theme != nil {
		t.Fatalf("expected no theme config")
	}
}

type captureRenderer struct {
	view    render.View
	options render.RenderOptions
}

func (r *captureRenderer) Name() string {
	return "capture"
}

func (r *captureRenderer) ContentType() string {
	return "text/plain"
}

func (r *captureRenderer) Render(_ context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	r.view = view
	r.options = opts
	return []byte(view.Variant.Name), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}
