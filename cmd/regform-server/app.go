package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/goliatone/go-regform/internal/config"
	"github.com/goliatone/go-regform/internal/server"
	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/processor"
	"github.com/goliatone/go-regform/pkg/render"
	htmlrenderer "github.com/goliatone/go-regform/pkg/renderers/html"
	"github.com/goliatone/go-regform/pkg/renderers/jsonview"
)

// buildHandler wires configuration into the HTTP router.
func buildHandler(cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	programs, err := catalog.LoadFile(cfg.Catalog.File)
	if err != nil {
		return nil, err
	}

	html, err := htmlrenderer.New(htmlrenderer.WithTemplatesDir(cfg.Forms.TemplatesDir))
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	if err := registry.Register(html); err != nil {
		return nil, err
	}
	if err := registry.Register(jsonview.New()); err != nil {
		return nil, err
	}

	options := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithRegistry(registry),
		orchestrator.WithProcessor(processor.New(
			processor.WithCatalog(programs),
			processor.WithLogger(logger),
		)),
		orchestrator.WithTheme(cfg.Theme.Name, cfg.Theme.Variant),
	}
	if cfg.Forms.VariantsDir != "" {
		options = append(options, orchestrator.WithVariantsFS(os.DirFS(cfg.Forms.VariantsDir)))
	}
	orch := orchestrator.New(options...)
	if err := orch.Err(); err != nil {
		return nil, err
	}

	return server.NewRouter(server.Config{
		Orchestrator:   orch,
		OpenAPI:        openapi.NewGenerator(orch.Variants(), programs, openapi.WithVersion(Version), openapi.WithServer(cfg.Server.PublicURL)),
		DefaultVariant: cfg.Forms.Default,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		Logger:         logger,
	})
}
