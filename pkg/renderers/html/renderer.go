// Package html renders registration forms and confirmation pages as HTML
// using the pongo2 template engine over an embedded template bundle.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-regform/pkg/render"
	rendertemplate "github.com/goliatone/go-regform/pkg/render/template"
	gotemplate "github.com/goliatone/go-regform/pkg/render/template/gotemplate"
)

// Name is the registry name of the HTML renderer.
const Name = "html"

const (
	layoutTemplate  = "templates/layout.tmpl"
	formTemplate    = "templates/form.tmpl"
	successTemplate = "templates/success.tmpl"
	fieldTemplate   = "templates/partials/field.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir overlays templates from a directory on disk. The
// directory mirrors the bundle layout (templates/form.tmpl, ...); files it
// does not contain are served from the template bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet links an external stylesheet. A theme asset named
// "stylesheet" takes precedence.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = href
	}
}

// WithDefaultStyles inlines the bundled stylesheet into every page.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// Renderer produces HTML pages for form and confirmation views.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	stylesheet   string
	inlineStyles string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templatesDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	r := &Renderer{templates: templates, stylesheet: cfg.stylesheet}
	if cfg.inlineStyles {
		r.inlineStyles = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws the form page, or the confirmation page for accepted
// outcomes.
func (r *Renderer) Render(ctx context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	var (
		name = formTemplate
		data map[string]any
		err  error
	)
	if view.Kind == render.ViewConfirmation {
		accepted, ok := view.Accepted()
		if !ok {
			return nil, fmt.Errorf("html renderer: confirmation view without accepted outcome")
		}
		name = successTemplate
		data = r.confirmationData(view, accepted, opts)
	} else {
		data, err = r.formData(view, opts)
		if err != nil {
			return nil, err
		}
	}

	content, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	data["content"] = content

	page, err := r.templates.RenderTemplate(layoutTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render layout: %w", err)
	}
	return []byte(page), nil
}
