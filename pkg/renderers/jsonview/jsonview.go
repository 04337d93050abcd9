// Package jsonview renders views as JSON documents for API clients.
package jsonview

import (
	"context"
	"encoding/json"
	"fmt"
	"html"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/processor"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/variant"
)

// Name is the registry name of the JSON renderer.
const Name = "json"

// StatusForm marks a payload describing a blank form.
const StatusForm = "form"

// Payload is the document written for every view.
type Payload struct {
	Status      string              `json:"status"`
	Variant     string              `json:"variant"`
	ReferenceID string              `json:"referenceId,omitempty"`
	Program     *catalog.Program    `json:"program,omitempty"`
	Values      map[string]any      `json:"values,omitempty"`
	Errors      map[string][]string `json:"errors,omitempty"`
	Export      *ExportLink         `json:"export,omitempty"`
	Fields      []FieldPayload      `json:"fields,omitempty"`
}

// ExportLink points at the downloadable export document.
type ExportLink struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	Href     string `json:"href"`
}

// FieldPayload describes one input of a blank form.
type FieldPayload struct {
	Name        string           `json:"name"`
	Label       string           `json:"label"`
	Widget      string           `json:"widget"`
	Required    bool             `json:"required,omitempty"`
	Multi       bool             `json:"multi,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	Options     []variant.Option `json:"options,omitempty"`
}

// Renderer encodes views as JSON.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// Option customises the renderer.
type Option func(*Renderer)

// WithIndent pretty-prints output using indent per level.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// New constructs the JSON renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render writes {status, referenceId, program, values, errors}. Accepted
// values are the sanitized text with HTML entities decoded. Blank form
// views describe the variant fields instead.
func (r *Renderer) Render(_ context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	payload, err := Build(view, opts)
	if err != nil {
		return nil, err
	}
	var out []byte
	if r.indent != "" {
		out, err = json.MarshalIndent(payload, "", r.indent)
	} else {
		out, err = json.Marshal(payload)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonview: encode payload: %w", err)
	}
	return out, nil
}

// Build assembles the payload without encoding it.
func Build(view render.View, opts render.RenderOptions) (Payload, error) {
	payload := Payload{Variant: view.Variant.Name}

	switch outcome := view.Outcome.(type) {
	case processor.Accepted:
		program := outcome.Program
		payload.Status = outcome.Status()
		payload.ReferenceID = outcome.ReferenceID
		payload.Program = &program
		payload.Values = outcome.Submission.Map(html.UnescapeString).Values()
		if doc := view.Export; doc != nil {
			href, err := doc.DataURI()
			if err != nil {
				return Payload{}, err
			}
			payload.Export = &ExportLink{ID: doc.ExportID, FileName: doc.FileName(), Href: href}
		}
	case processor.Rejected:
		payload.Status = outcome.Status()
		payload.Values = outcome.Submission.Values()
		payload.Errors = render.FieldErrors(outcome.Errors)
	default:
		payload.Status = StatusForm
		payload.Values = opts.Values
		payload.Errors = opts.Errors
		payload.Fields = describeFields(view)
	}
	return payload, nil
}

func describeFields(view render.View) []FieldPayload {
	fields := make([]FieldPayload, 0, len(view.Variant.Fields))
	for _, field := range view.Variant.Fields {
		options := field.Options
		if field.Widget == variant.WidgetProgram {
			options = make([]variant.Option, 0, len(view.Programs))
			for _, p := range view.Programs {
				options = append(options, variant.Option{Value: p.Code, Label: p.Name})
			}
		}
		fields = append(fields, FieldPayload{
			Name:        field.Name,
			Label:       field.Label,
			Widget:      field.Widget,
			Required:    field.Required,
			Multi:       field.Multi,
			Placeholder: field.Placeholder,
			Options:     options,
		})
	}
	return fields
}
