// Package processor turns a raw form submission into an Outcome: it validates
// the values against a variant, sanitizes them, resolves the chosen program,
// and issues a reference id.
package processor

import (
	"context"
	"log/slog"
	"strings"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/refid"
	"github.com/goliatone/go-regform/pkg/sanitize"
	"github.com/goliatone/go-regform/pkg/submission"
	"github.com/goliatone/go-regform/pkg/validation"
	"github.com/goliatone/go-regform/pkg/variant"
)

// SanitizeFunc cleans a single field value.
type SanitizeFunc func(string) string

// Option customises the processor.
type Option func(*Processor)

// WithCatalog sets the program catalog used to resolve program codes.
func WithCatalog(c *catalog.Catalog) Option {
	return func(p *Processor) {
		if c != nil {
			p.catalog = c
		}
	}
}

// WithReferenceGenerator injects the reference id generator. Tests pass a
// generator over a fixed or seeded source.
func WithReferenceGenerator(g *refid.Generator) Option {
	return func(p *Processor) {
		if g != nil {
			p.refs = g
		}
	}
}

// WithSanitizer replaces the field sanitizer.
func WithSanitizer(fn SanitizeFunc) Option {
	return func(p *Processor) {
		if fn != nil {
			p.sanitize = fn
		}
	}
}

// WithLogger sets the logger for outcome events. Only variant and field names
// are logged, never submitted values.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Processor is safe for concurrent use as long as the injected reference
// source is.
type Processor struct {
	catalog  *catalog.Catalog
	refs     *refid.Generator
	sanitize SanitizeFunc
	logger   *slog.Logger
}

// New constructs a Processor with the embedded catalog, the process-wide
// random source and the default sanitizer unless overridden.
func New(options ...Option) *Processor {
	p := &Processor{
		refs:     refid.New(nil),
		sanitize: sanitize.Field,
		logger:   slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	if p.catalog == nil {
		p.catalog = catalog.MustDefault()
	}
	return p
}

// Catalog exposes the program catalog in use.
func (p *Processor) Catalog() *catalog.Catalog {
	return p.catalog
}

// Sanitize cleans one value.
func (p *Processor) Sanitize(raw string) string {
	return p.sanitize(raw)
}

// SanitizeSubmission returns a sanitized copy of sub. List entries that
// sanitize to nothing are dropped. sub itself is left untouched.
func (p *Processor) SanitizeSubmission(sub submission.Submission) submission.Submission {
	scalars := sub.Scalars()
	for name, value := range scalars {
		scalars[name] = p.sanitize(value)
	}
	lists := sub.Lists()
	for name, values := range lists {
		cleaned := make([]string, 0, len(values))
		for _, value := range values {
			if v := p.sanitize(value); v != "" {
				cleaned = append(cleaned, v)
			}
		}
		lists[name] = cleaned
	}
	return submission.New(scalars, lists)
}

// Validate checks sub against the variant's field specs. All fields are
// evaluated; the result is empty when the submission is valid.
func (p *Processor) Validate(v variant.Variant, sub submission.Submission) validation.Result {
	return validation.Validate(v.Specs(), sub)
}

// ResolveProgram maps a code to its catalog entry, falling back to the
// unknown program.
func (p *Processor) ResolveProgram(code string) catalog.Program {
	return p.catalog.Resolve(strings.TrimSpace(code))
}

// GenerateReferenceID returns prefix followed by a number in [10000, 99999].
func (p *Processor) GenerateReferenceID(prefix string) string {
	return p.refs.Generate(prefix)
}

// Process validates sub and, when it is valid, sanitizes it and issues a
// reference id. Rejected outcomes keep the original submission.
func (p *Processor) Process(ctx context.Context, v variant.Variant, sub submission.Submission) Outcome {
	if ctx == nil {
		ctx = context.Background()
	}

	result := p.Validate(v, sub)
	if !result.Valid() {
		p.logger.DebugContext(ctx, "submission rejected",
			"variant", v.Name,
			"fields", result.Fields(),
		)
		return Rejected{Variant: v.Name, Submission: sub, Errors: result}
	}

	clean := p.SanitizeSubmission(sub)
	program := p.ResolveProgram(clean.Value(submission.FieldProgram))

	prefix := v.ReferencePrefix
	if prefix == "" {
		prefix = refid.DefaultPrefix
	}
	ref := p.GenerateReferenceID(prefix)

	p.logger.InfoContext(ctx, "submission accepted",
		"variant", v.Name,
		"program", program.Code,
		"reference_id", ref,
		"fields", clean.Names(),
	)
	return Accepted{
		Variant:     v.Name,
		Submission:  clean,
		Program:     program,
		ReferenceID: ref,
	}
}

// ProcessValues is a convenience wrapper building the submission from the
// raw form values first.
func (p *Processor) ProcessValues(ctx context.Context, v variant.Variant, values map[string][]string) Outcome {
	return p.Process(ctx, v, submission.FromValues(values))
}
