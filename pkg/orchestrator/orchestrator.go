package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/export"
	"github.com/goliatone/go-regform/pkg/processor"
	"github.com/goliatone/go-regform/pkg/render"
	htmlrenderer "github.com/goliatone/go-regform/pkg/renderers/html"
	"github.com/goliatone/go-regform/pkg/renderers/jsonview"
	"github.com/goliatone/go-regform/pkg/variant"
)

const defaultRendererName = htmlrenderer.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithVariants injects a variant registry.
func WithVariants(registry *variant.Registry) Option {
	return func(o *Orchestrator) {
		o.variants = registry
	}
}

// WithVariantsFS loads variant documents from fsys instead of the embedded
// set.
func WithVariantsFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.variantsFS = fsys
	}
}

// WithProcessor injects the form processor.
func WithProcessor(p *processor.Processor) Option {
	return func(o *Orchestrator) {
		o.processor = p
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request names none
// and sends no Accept header.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithExportOptions configures export document construction.
func WithExportOptions(options ...export.Option) Option {
	return func(o *Orchestrator) {
		o.exportOptions = append(o.exportOptions, options...)
	}
}

// WithLogger sets the logger for pipeline events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates one request from raw form values to rendered
// output. It applies the embedded variants, the default processor, and the
// HTML and JSON renderers unless callers inject their own.
type Orchestrator struct {
	variants        *variant.Registry
	variantsFS      fs.FS
	processor       *processor.Processor
	registry        *render.Registry
	defaultRenderer string
	exportOptions   []export.Option
	logger          *slog.Logger
	initialiseErr   error

	themeSelector  theme.ThemeSelector
	themeManifest  *theme.Manifest
	themeName      string
	themeVariant   string
	themeSpecified bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one form interaction.
type Request struct {
	// Variant names the form. Empty selects variant.DefaultName.
	Variant string
	// Method is the HTTP method. POST processes Values; anything else renders
	// the blank form.
	Method string
	// Values holds the posted form fields.
	Values url.Values
	// Renderer names the renderer explicitly. It wins over Accept.
	Renderer string
	// Accept is matched against renderer content types.
	Accept string
	// Action is the URL the rendered form posts to.
	Action string
	// HiddenFields are emitted as hidden inputs.
	HiddenFields map[string]string
	// ThemeName and ThemeVariant override the configured theme selection.
	ThemeName    string
	ThemeVariant string
}

// Response is the rendered result.
type Response struct {
	Body        []byte
	ContentType string
	Renderer    string
	Variant     string
	// Outcome is nil for blank forms.
	Outcome processor.Outcome
	// Export is set for accepted outcomes.
	Export *export.Document
}

// Accepted reports whether the request produced an accepted submission.
func (r Response) Accepted() bool {
	_, ok := r.Outcome.(processor.Accepted)
	return ok
}

// Handle runs the full pipeline for req.
func (o *Orchestrator) Handle(ctx context.Context, req Request) (Response, error) {
	if ctx == nil {
		return Response{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Response{}, err
	}

	name := strings.TrimSpace(req.Variant)
	if name == "" {
		name = variant.DefaultName
	}
	v, err := o.variants.Get(name)
	if err != nil {
		return Response{}, fmt.Errorf("orchestrator: %w", err)
	}

	renderer, err := o.rendererFor(req.Renderer, req.Accept)
	if err != nil {
		return Response{}, err
	}

	themeCfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return Response{}, err
	}

	opts := render.RenderOptions{
		Action:       req.Action,
		HiddenFields: req.HiddenFields,
		Theme:        themeCfg,
	}
	programs := o.processor.Catalog().Programs()
	view := render.FormView(v, programs)
	resp := Response{Variant: v.Name}

	if strings.EqualFold(req.Method, http.MethodPost) {
		outcome := o.processor.ProcessValues(ctx, v, req.Values)
		if accepted, ok := outcome.(processor.Accepted); ok {
			doc := export.New(v, accepted, o.exportOptions...)
			resp.Export = &doc
		}
		resp.Outcome = outcome
		view = render.OutcomeView(v, programs, outcome, resp.Export)
		opts = render.OptionsFor(outcome, opts)
	}

	body, err := renderer.Render(ctx, view, opts)
	if err != nil {
		return Response{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	o.logger.DebugContext(ctx, "view rendered",
		"variant", v.Name,
		"renderer", renderer.Name(),
		"view", string(view.Kind),
	)

	resp.Body = body
	resp.ContentType = renderer.ContentType()
	resp.Renderer = renderer.Name()
	return resp, nil
}

// Variants exposes the variant registry in use.
func (o *Orchestrator) Variants() *variant.Registry {
	return o.variants
}

// Processor exposes the processor in use.
func (o *Orchestrator) Processor() *processor.Processor {
	return o.processor
}

// Err reports a configuration error captured during construction.
func (o *Orchestrator) Err() error {
	return o.initialiseErr
}

func (o *Orchestrator) rendererFor(name, accept string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	if name != "" {
		renderer, err := o.registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
		return renderer, nil
	}
	renderer, err := o.registry.Negotiate(accept)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: negotiate renderer: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.variants == nil {
		var err error
		if o.variantsFS != nil {
			o.variants, err = variant.LoadFS(o.variantsFS)
		} else {
			o.variants, err = variant.Default()
		}
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load variants: %w", err)
			o.variants = variant.NewRegistry()
		}
	}
	if o.processor == nil {
		o.processor = processor.New(processor.WithLogger(o.logger))
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := htmlrenderer.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
		o.registry.MustRegister(jsonview.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.registry.Has(o.defaultRenderer) {
		_ = o.registry.SetDefault(o.defaultRenderer)
	}
	if !o.themeSpecified && o.themeSelector == nil {
		o.themeManifest = DefaultManifest()
	}
	if o.themeManifest != nil && o.initialiseErr == nil {
		if err := validateManifest(o.themeManifest); err != nil {
			o.initialiseErr = err
		}
	}
}
