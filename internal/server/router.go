// Package server exposes the registration forms over HTTP: HTML pages for
// browsers plus a small JSON API described by an OpenAPI document.
package server

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-regform/components/programs"
	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	htmlrenderer "github.com/goliatone/go-regform/pkg/renderers/html"
	"github.com/goliatone/go-regform/pkg/variant"
)

// DefaultMaxBodyBytes caps form bodies when Config leaves it unset.
const DefaultMaxBodyBytes int64 = 1 << 20

// Config holds the router dependencies.
type Config struct {
	Orchestrator *orchestrator.Orchestrator
	// OpenAPI defaults to a generator over the orchestrator's variants.
	OpenAPI *openapi.Generator
	// Programs defaults to the component over the processor catalog.
	Programs *programs.Component
	// Assets is served under /assets/; nil means the bundled stylesheet.
	Assets fs.FS
	// DefaultVariant is the target of GET /.
	DefaultVariant string
	MaxBodyBytes   int64
	Logger         *slog.Logger
}

// NewRouter builds the HTTP handler.
func NewRouter(cfg Config) (http.Handler, error) {
	if cfg.Orchestrator == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	if err := cfg.Orchestrator.Err(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if strings.TrimSpace(cfg.DefaultVariant) == "" {
		cfg.DefaultVariant = variant.DefaultName
	}
	if !cfg.Orchestrator.Variants().Has(cfg.DefaultVariant) {
		return nil, errors.New("server: default variant " + cfg.DefaultVariant + " is not registered")
	}
	catalog := cfg.Orchestrator.Processor().Catalog()
	if cfg.OpenAPI == nil {
		cfg.OpenAPI = openapi.NewGenerator(cfg.Orchestrator.Variants(), catalog)
	}
	if cfg.Programs == nil {
		cfg.Programs = programs.New(programs.WithCatalog(catalog), programs.WithRoutePath(openapi.ProgramsPath))
	}
	if cfg.Assets == nil {
		cfg.Assets = htmlrenderer.AssetsFS()
	}

	h := &handlers{
		orch:           cfg.Orchestrator,
		logger:         cfg.Logger,
		defaultVariant: cfg.DefaultVariant,
		maxBodyBytes:   cfg.MaxBodyBytes,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(AccessLog(cfg.Logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/", h.redirectDefault)
	r.Get("/health", h.health)
	r.Get("/openapi.json", cfg.OpenAPI.Handler())
	r.Handle("/forms/{variant}", http.HandlerFunc(h.form))

	r.Get(openapi.FormsPath, h.listForms)
	r.Post(openapi.FormsPath+"/{variant}/submissions", h.submit)
	if _, err := cfg.Programs.RegisterRoutes(r, "/"); err != nil {
		return nil, err
	}

	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(cfg.Assets))))

	return r, nil
}
