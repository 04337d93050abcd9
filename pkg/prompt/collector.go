// Package prompt collects registration submissions interactively. Each field
// of a variant becomes one terminal prompt; the answers are processed with the
// same pipeline the HTTP surface uses.
package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/processor"
	"github.com/goliatone/go-regform/pkg/submission"
	"github.com/goliatone/go-regform/pkg/variant"
)

// DefaultMaxAttempts bounds how many times Run re-prompts after a rejection.
const DefaultMaxAttempts = 3

const skipOption = "(skip)"

// Collector prompts for variant fields through a Driver.
type Collector struct {
	driver      Driver
	programs    *catalog.Catalog
	maxAttempts int
}

// Option customises a Collector.
type Option func(*Collector)

// WithCatalog sets the catalog offered for program fields.
func WithCatalog(c *catalog.Catalog) Option {
	return func(col *Collector) {
		if c != nil {
			col.programs = c
		}
	}
}

// WithMaxAttempts sets how many submissions Run tries before giving up.
func WithMaxAttempts(n int) Option {
	return func(col *Collector) {
		if n > 0 {
			col.maxAttempts = n
		}
	}
}

// NewCollector constructs a Collector over driver.
func NewCollector(driver Driver, options ...Option) (*Collector, error) {
	if driver == nil {
		return nil, ErrNoDriver
	}
	c := &Collector{
		driver:      driver,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.programs == nil {
		programs, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("prompt: load catalog: %w", err)
		}
		c.programs = programs
	}
	return c, nil
}

// Collect asks for every field of v in declaration order. prior supplies the
// defaults, typically the values of a rejected attempt.
func (c *Collector) Collect(ctx context.Context, v variant.Variant, prior submission.Submission) (submission.Submission, error) {
	scalars := make(map[string]string, len(v.Fields))
	lists := make(map[string][]string)

	for _, field := range v.Fields {
		switch {
		case field.Widget == variant.WidgetProgram:
			code, err := c.askProgram(ctx, field, prior.Value(field.Name))
			if err != nil {
				return submission.Submission{}, err
			}
			scalars[field.Name] = code
		case field.Multi:
			values, err := c.askMulti(ctx, field, prior.List(field.Name))
			if err != nil {
				return submission.Submission{}, err
			}
			if len(values) > 0 {
				lists[field.Name] = values
			}
		case field.HasOptions():
			value, err := c.askChoice(ctx, field, prior.Value(field.Name))
			if err != nil {
				return submission.Submission{}, err
			}
			scalars[field.Name] = value
		case field.Widget == variant.WidgetTextarea:
			value, err := c.driver.TextArea(ctx, TextAreaConfig{
				Message: message(field),
				Default: prior.Value(field.Name),
				Help:    field.Help,
			})
			if err != nil {
				return submission.Submission{}, err
			}
			scalars[field.Name] = value
		default:
			value, err := c.driver.Input(ctx, InputConfig{
				Message: message(field),
				Default: prior.Value(field.Name),
				Help:    inputHelp(field),
			})
			if err != nil {
				return submission.Submission{}, err
			}
			scalars[field.Name] = value
		}
	}

	return submission.New(scalars, lists), nil
}

// Run collects and processes submissions until one is accepted or the attempt
// budget is spent. Field errors of a rejected attempt are reported through
// the driver and its values become the defaults of the next one. The last
// outcome is always returned alongside any driver error.
func (c *Collector) Run(ctx context.Context, p *processor.Processor, v variant.Variant) (processor.Outcome, error) {
	if p == nil {
		p = processor.New(processor.WithCatalog(c.programs))
	}

	var (
		prior   submission.Submission
		outcome processor.Outcome
	)
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		sub, err := c.Collect(ctx, v, prior)
		if err != nil {
			return outcome, err
		}
		outcome = p.Process(ctx, v, sub)
		rejected, ok := outcome.(processor.Rejected)
		if !ok {
			return outcome, nil
		}
		if err := c.reportErrors(ctx, v, rejected); err != nil {
			return outcome, err
		}
		if attempt == c.maxAttempts {
			break
		}
		retry, err := c.driver.Confirm(ctx, ConfirmConfig{Message: "Fix the highlighted fields and try again?", Default: true})
		if err != nil {
			return outcome, err
		}
		if !retry {
			break
		}
		prior = rejected.Submission
	}
	return outcome, nil
}

func (c *Collector) reportErrors(ctx context.Context, v variant.Variant, rejected processor.Rejected) error {
	lines := []string{"The submission has errors:"}
	for _, err := range rejected.Errors.List() {
		label := err.Field
		if field, ok := v.Field(err.Field); ok {
			label = field.Label
		}
		lines = append(lines, fmt.Sprintf("  %s: %s", label, err.Message))
	}
	return c.driver.Info(ctx, strings.Join(lines, "\n"))
}

func (c *Collector) askProgram(ctx context.Context, field variant.Field, prior string) (string, error) {
	programs := c.programs.Programs()
	options := make([]string, 0, len(programs)+1)
	codes := make([]string, 0, len(programs)+1)
	if !field.Required {
		options = append(options, skipOption)
		codes = append(codes, "")
	}
	defaultIndex := 0
	for _, program := range programs {
		if program.Code == prior {
			defaultIndex = len(options)
		}
		options = append(options, fmt.Sprintf("%s %s (%s)", program.Emoji, program.Name, program.Code))
		codes = append(codes, program.Code)
	}

	idx, err := c.driver.Select(ctx, SelectConfig{
		Message:      message(field),
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         field.Help,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(codes) {
		return "", nil
	}
	return codes[idx], nil
}

func (c *Collector) askChoice(ctx context.Context, field variant.Field, prior string) (string, error) {
	options := make([]string, 0, len(field.Options)+1)
	values := make([]string, 0, len(field.Options)+1)
	if !field.Required {
		options = append(options, skipOption)
		values = append(values, "")
	}
	defaultIndex := 0
	for _, opt := range field.Options {
		if opt.Value == prior {
			defaultIndex = len(options)
		}
		options = append(options, opt.Label)
		values = append(values, opt.Value)
	}

	idx, err := c.driver.Select(ctx, SelectConfig{
		Message:      message(field),
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         field.Help,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(values) {
		return "", nil
	}
	return values[idx], nil
}

func (c *Collector) askMulti(ctx context.Context, field variant.Field, prior []string) ([]string, error) {
	chosen := make(map[string]struct{}, len(prior))
	for _, value := range prior {
		chosen[value] = struct{}{}
	}
	options := make([]string, 0, len(field.Options))
	var defaults []int
	for i, opt := range field.Options {
		options = append(options, opt.Label)
		if _, ok := chosen[opt.Value]; ok {
			defaults = append(defaults, i)
		}
	}

	indices, err := c.driver.MultiSelect(ctx, SelectConfig{
		Message:  message(field),
		Options:  options,
		Defaults: defaults,
		Help:     field.Help,
	})
	if err != nil {
		return nil, err
	}
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(field.Options) {
			out = append(out, field.Options[idx].Value)
		}
	}
	return out, nil
}

func message(field variant.Field) string {
	if field.Required {
		return field.Label + " *"
	}
	return field.Label
}

func inputHelp(field variant.Field) string {
	if field.Help != "" {
		return field.Help
	}
	if field.Placeholder != "" {
		return "e.g. " + field.Placeholder
	}
	return ""
}
