package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ErrUnknownTheme is returned when a requested theme or theme variant does
// not exist.
var ErrUnknownTheme = errors.New("orchestrator: unknown theme")

// Default theme identifiers.
const (
	DefaultThemeName    = "regform"
	DefaultThemeVariant = "light"
)

// WithThemeSelector resolves themes through a go-theme selector. The
// selection's manifest is flattened into the renderer config.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeSpecified = true
	}
}

// WithThemeManifest uses manifest directly. Pass nil to render without theme
// tokens.
func WithThemeManifest(manifest *theme.Manifest) Option {
	return func(o *Orchestrator) {
		o.themeManifest = manifest
		o.themeSpecified = true
	}
}

// WithTheme sets the default theme name and variant for requests that do not
// pick one.
func WithTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeName = strings.TrimSpace(name)
		o.themeVariant = strings.TrimSpace(variant)
	}
}

// DefaultManifest is the bundled theme: a light and a dark variant over the
// bundled stylesheet.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"accent":  "#4f46e5",
			"surface": "#ffffff",
			"text":    "#111827",
			"muted":   "#6b7280",
			"danger":  "#dc2626",
			"radius":  "8px",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"stylesheet": "regform.css",
			},
		},
		Variants: map[string]theme.Variant{
			DefaultThemeVariant: {},
			"dark": {
				Tokens: map[string]string{
					"surface": "#111827",
					"text":    "#f9fafb",
					"muted":   "#9ca3af",
				},
			},
		},
	}
}

// RendererConfig flattens manifest and the named variant into the config
// renderers consume. Variant tokens, templates and asset files override the
// base manifest; every token is also exposed as a "--token" CSS variable.
func RendererConfig(manifest *theme.Manifest, variantName string) *theme.RendererConfig {
	if manifest == nil {
		return nil
	}
	v := manifest.Variants[variantName]

	tokens := mergeStrings(manifest.Tokens, v.Tokens)
	partials := mergeStrings(manifest.Templates, v.Templates)
	files := mergeStrings(manifest.Assets.Files, v.Assets.Files)
	prefix := manifest.Assets.Prefix
	if strings.TrimSpace(v.Assets.Prefix) != "" {
		prefix = v.Assets.Prefix
	}

	cfg := &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variantName,
		Partials: partials,
		Tokens:   tokens,
		AssetURL: assetResolver(prefix, files),
	}
	if len(tokens) > 0 {
		cfg.CSSVars = make(map[string]string, len(tokens))
		for key, value := range tokens {
			cfg.CSSVars["--"+key] = value
		}
	}
	return cfg
}

func (o *Orchestrator) resolveTheme(name, variantName string) (*theme.RendererConfig, error) {
	if name = strings.TrimSpace(name); name == "" {
		name = o.themeName
	}
	if variantName = strings.TrimSpace(variantName); variantName == "" {
		variantName = o.themeVariant
	}

	if o.themeSelector != nil {
		selection, err := o.themeSelector.Select(name, variantName)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: select theme: %w", err)
		}
		if selection == nil || selection.Manifest == nil {
			return nil, nil
		}
		cfg := RendererConfig(selection.Manifest, selection.Variant)
		if selection.Theme != "" {
			cfg.Theme = selection.Theme
		}
		return cfg, nil
	}

	if o.themeManifest == nil {
		return nil, nil
	}
	if name != "" && name != o.themeManifest.Name {
		return nil, fmt.Errorf("%w %q", ErrUnknownTheme, name)
	}
	if variantName == "" {
		variantName = DefaultThemeVariant
	}
	if _, ok := o.themeManifest.Variants[variantName]; !ok && len(o.themeManifest.Variants) > 0 {
		return nil, fmt.Errorf("%w: %q has no variant %q", ErrUnknownTheme, o.themeManifest.Name, variantName)
	}
	return RendererConfig(o.themeManifest, variantName), nil
}

func validateManifest(manifest *theme.Manifest) error {
	if err := theme.NewRegistry().Register(manifest); err != nil {
		return fmt.Errorf("orchestrator: register theme manifest: %w", err)
	}
	return nil
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(prefix, "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
			return file
		}
		return prefix + "/" + file
	}
}

func mergeStrings(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}
