// Package openapi describes the registration API as an OpenAPI 3.0 document.
// The document is derived from the registered form variants: every variant
// contributes one submission path whose request body lists its fields.
package openapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/variant"
)

// Route prefixes shared with the HTTP server.
const (
	FormsPath    = "/api/forms"
	ProgramsPath = "/api/programs"
)

const formContentType = "application/x-www-form-urlencoded"

// SubmissionsPath is the API path accepting submissions for the named variant.
func SubmissionsPath(name string) string {
	return FormsPath + "/" + name + "/submissions"
}

// Generator produces the OpenAPI document for a variant registry.
type Generator struct {
	title       string
	version     string
	description string
	servers     []string

	variants *variant.Registry
	programs *catalog.Catalog

	mu         sync.RWMutex
	cachedSpec *openapi3.T
}

// Option configures the generator.
type Option func(*Generator)

// WithTitle sets the API title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithVersion sets the API version.
func WithVersion(version string) Option {
	return func(g *Generator) {
		g.version = version
	}
}

// WithDescription sets the API description.
func WithDescription(description string) Option {
	return func(g *Generator) {
		g.description = description
	}
}

// WithServer adds a server URL.
func WithServer(url string) Option {
	return func(g *Generator) {
		if strings.TrimSpace(url) == "" {
			return
		}
		g.servers = append(g.servers, url)
	}
}

// NewGenerator creates a generator over variants. programs supplies the
// program codes listed in descriptions; nil falls back to the embedded catalog.
func NewGenerator(variants *variant.Registry, programs *catalog.Catalog, opts ...Option) *Generator {
	g := &Generator{
		title:       "Registration API",
		version:     "1.0.0",
		description: "Form registration service: validates, sanitizes and confirms submissions.",
		variants:    variants,
		programs:    programs,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.programs == nil {
		if c, err := catalog.Default(); err == nil {
			g.programs = c
		}
	}
	return g
}

// Invalidate drops the cached document so the next Generate rebuilds it.
func (g *Generator) Invalidate() {
	g.mu.Lock()
	g.cachedSpec = nil
	g.mu.Unlock()
}

// Generate returns the OpenAPI document, building it on first use.
func (g *Generator) Generate() *openapi3.T {
	g.mu.RLock()
	if g.cachedSpec != nil {
		spec := g.cachedSpec
		g.mu.RUnlock()
		return spec
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cachedSpec != nil {
		return g.cachedSpec
	}

	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       g.title,
			Version:     g.version,
			Description: g.description,
		},
		Servers: make(openapi3.Servers, 0, len(g.servers)),
		Paths:   &openapi3.Paths{},
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
	}
	for _, url := range g.servers {
		spec.Servers = append(spec.Servers, &openapi3.Server{URL: url})
	}

	g.addCommonSchemas(spec)
	g.addCatalogPaths(spec)
	for _, v := range g.variants.All() {
		g.addVariant(spec, v)
	}

	g.cachedSpec = spec
	return spec
}

// JSON encodes the document.
func (g *Generator) JSON() ([]byte, error) {
	return json.Marshal(g.Generate())
}

// Handler serves the document as JSON.
func (g *Generator) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := g.JSON()
		if err != nil {
			http.Error(w, "failed to encode OpenAPI document", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(payload)
	}
}

func (g *Generator) addCommonSchemas(spec *openapi3.T) {
	spec.Components.Schemas["Program"] = componentRef("", programSchema())
	spec.Components.Schemas["Outcome"] = componentRef("", outcomeSchema())
	spec.Components.Schemas["FormSummary"] = componentRef("", formSummarySchema())
	spec.Components.Schemas["ProgramOptions"] = componentRef("", programOptionsSchema())
}

func (g *Generator) addCatalogPaths(spec *openapi3.T) {
	spec.Paths.Set(FormsPath, &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "listForms",
			Summary:     "List form variants",
			Tags:        []string{"Forms"},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
					Value: openapi3.NewResponse().
						WithDescription("Registered form variants").
						WithJSONSchema(arrayOf(componentRef("FormSummary", formSummarySchema()))),
				}),
			),
		},
	})

	spec.Paths.Set(ProgramsPath, &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "listPrograms",
			Summary:     "Search the program catalog",
			Description: "Known codes: " + strings.Join(g.programs.Codes(), ", "),
			Tags:        []string{"Programs"},
			Parameters: openapi3.Parameters{
				queryParam("code", "Resolve one program exactly; unknown codes return the fallback with known=false", stringSchema()),
				queryParam("q", "Case-insensitive match on code or name", stringSchema()),
				queryParam("limit", "Maximum number of results", &openapi3.Schema{Type: &openapi3.Types{"integer"}}),
			},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
					Value: openapi3.NewResponse().
						WithDescription("Matching programs").
						WithJSONSchemaRef(componentRef("ProgramOptions", programOptionsSchema())),
				}),
			),
		},
	})
}

func (g *Generator) addVariant(spec *openapi3.T, v variant.Variant) {
	bodyName := schemaName(v.Name) + "Submission"
	body := g.submissionSchema(v)
	spec.Components.Schemas[bodyName] = componentRef("", body)

	outcome := componentRef("Outcome", outcomeSchema())
	spec.Paths.Set(SubmissionsPath(v.Name), &openapi3.PathItem{
		Post: &openapi3.Operation{
			OperationID: "submit" + schemaName(v.Name),
			Summary:     "Submit the " + v.Title + " form",
			Description: v.Description,
			Tags:        []string{"Submissions"},
			RequestBody: &openapi3.RequestBodyRef{
				Value: &openapi3.RequestBody{
					Required: true,
					Content: openapi3.Content{
						formContentType: &openapi3.MediaType{
							Schema: componentRef(bodyName, body),
						},
					},
				},
			},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusCreated, &openapi3.ResponseRef{
					Value: openapi3.NewResponse().
						WithDescription("Submission accepted; the body carries the reference id").
						WithJSONSchemaRef(outcome),
				}),
				openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{
					Value: openapi3.NewResponse().
						WithDescription("Submission rejected; the body carries field errors").
						WithJSONSchemaRef(outcome),
				}),
			),
		},
	})
}

func (g *Generator) submissionSchema(v variant.Variant) *openapi3.Schema {
	schema := &openapi3.Schema{
		Type:       &openapi3.Types{"object"},
		Properties: make(openapi3.Schemas, len(v.Fields)),
	}
	for _, field := range v.Fields {
		prop := g.fieldSchema(field)
		schema.Properties[field.InputName()] = &openapi3.SchemaRef{Value: prop}
		if field.Required {
			schema.Required = append(schema.Required, field.InputName())
		}
	}
	return schema
}

func (g *Generator) fieldSchema(field variant.Field) *openapi3.Schema {
	value := stringSchema()
	value.Title = field.Label
	if field.HasOptions() {
		for _, opt := range field.Options {
			value.Enum = append(value.Enum, opt.Value)
		}
	}
	if field.Widget == variant.WidgetProgram {
		value.Description = "Program code: " + strings.Join(g.programs.Codes(), ", ")
	} else if field.Help != "" {
		value.Description = field.Help
	}
	if !field.Multi {
		return value
	}
	return &openapi3.Schema{
		Type:        &openapi3.Types{"array"},
		Title:       field.Label,
		Description: value.Description,
		Items:       &openapi3.SchemaRef{Value: value},
	}
}

func programSchema() *openapi3.Schema {
	return &openapi3.Schema{
		Type: &openapi3.Types{"object"},
		Properties: openapi3.Schemas{
			"code":  &openapi3.SchemaRef{Value: stringSchema()},
			"name":  &openapi3.SchemaRef{Value: stringSchema()},
			"emoji": &openapi3.SchemaRef{Value: stringSchema()},
			"color": &openapi3.SchemaRef{Value: stringSchema()},
		},
		Required: []string{"code", "name"},
	}
}

func outcomeSchema() *openapi3.Schema {
	status := stringSchema()
	status.Enum = []any{"accepted", "rejected", "form"}

	return &openapi3.Schema{
		Type: &openapi3.Types{"object"},
		Properties: openapi3.Schemas{
			"status":      &openapi3.SchemaRef{Value: status},
			"variant":     &openapi3.SchemaRef{Value: stringSchema()},
			"referenceId": &openapi3.SchemaRef{Value: stringSchema()},
			"program":     componentRef("Program", programSchema()),
			"values": &openapi3.SchemaRef{Value: &openapi3.Schema{
				Type: &openapi3.Types{"object"},
			}},
			"errors": &openapi3.SchemaRef{Value: &openapi3.Schema{
				Type: &openapi3.Types{"object"},
				AdditionalProperties: openapi3.AdditionalProperties{
					Schema: &openapi3.SchemaRef{Value: arrayOf(&openapi3.SchemaRef{Value: stringSchema()})},
				},
			}},
			"export": &openapi3.SchemaRef{Value: &openapi3.Schema{
				Type: &openapi3.Types{"object"},
				Properties: openapi3.Schemas{
					"id":       &openapi3.SchemaRef{Value: stringSchema()},
					"fileName": &openapi3.SchemaRef{Value: stringSchema()},
					"href":     &openapi3.SchemaRef{Value: stringSchema()},
				},
			}},
		},
		Required: []string{"status", "variant"},
	}
}

func formSummarySchema() *openapi3.Schema {
	return &openapi3.Schema{
		Type: &openapi3.Types{"object"},
		Properties: openapi3.Schemas{
			"name":        &openapi3.SchemaRef{Value: stringSchema()},
			"title":       &openapi3.SchemaRef{Value: stringSchema()},
			"description": &openapi3.SchemaRef{Value: stringSchema()},
			"path":        &openapi3.SchemaRef{Value: stringSchema()},
			"fields":      &openapi3.SchemaRef{Value: arrayOf(&openapi3.SchemaRef{Value: stringSchema()})},
		},
		Required: []string{"name", "path"},
	}
}

func programOptionsSchema() *openapi3.Schema {
	option := &openapi3.Schema{
		Type: &openapi3.Types{"object"},
		Properties: openapi3.Schemas{
			"code":  &openapi3.SchemaRef{Value: stringSchema()},
			"name":  &openapi3.SchemaRef{Value: stringSchema()},
			"emoji": &openapi3.SchemaRef{Value: stringSchema()},
			"color": &openapi3.SchemaRef{Value: stringSchema()},
			"known": &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}}},
		},
		Required: []string{"code", "name", "color", "known"},
	}
	return &openapi3.Schema{
		Type: &openapi3.Types{"object"},
		Properties: openapi3.Schemas{
			"data": &openapi3.SchemaRef{Value: arrayOf(&openapi3.SchemaRef{Value: option})},
		},
	}
}

// componentRef points at a component schema while keeping the resolved value
// so the in-memory document validates without a loader pass.
func componentRef(name string, value *openapi3.Schema) *openapi3.SchemaRef {
	ref := &openapi3.SchemaRef{Value: value}
	if name != "" {
		ref.Ref = "#/components/schemas/" + name
	}
	return ref
}

func queryParam(name, description string, schema *openapi3.Schema) *openapi3.ParameterRef {
	return &openapi3.ParameterRef{
		Value: &openapi3.Parameter{
			Name:        name,
			In:          openapi3.ParameterInQuery,
			Description: description,
			Schema:      &openapi3.SchemaRef{Value: schema},
		},
	}
}

func stringSchema() *openapi3.Schema {
	return &openapi3.Schema{Type: &openapi3.Types{"string"}}
}

func arrayOf(items *openapi3.SchemaRef) *openapi3.Schema {
	return &openapi3.Schema{
		Type:  &openapi3.Types{"array"},
		Items: items,
	}
}

// schemaName turns a variant name into an identifier fragment: "basic" ->
// "Basic", "study-abroad" -> "StudyAbroad".
func schemaName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// PathsFor lists the submission paths of the registry in variant-name order.
func PathsFor(registry *variant.Registry) []string {
	names := registry.List()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, SubmissionsPath(name))
	}
	return paths
}
