// Package export builds the downloadable JSON document offered on the
// confirmation view of an accepted registration.
package export

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/goliatone/go-regform/pkg/processor"
	"github.com/goliatone/go-regform/pkg/submission"
	"github.com/goliatone/go-regform/pkg/variant"
)

// ContentType of the exported document.
const ContentType = "application/json"

const fallbackFileStem = "registration"

// Entry is one exported field.
type Entry struct {
	Field  string   `json:"field"`
	Label  string   `json:"label"`
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

// Document is the export payload.
type Document struct {
	ExportID    string    `json:"exportId"`
	Variant     string    `json:"variant"`
	ReferenceID string    `json:"referenceId"`
	Program     string    `json:"program"`
	GeneratedAt time.Time `json:"generatedAt"`
	Fields      []Entry   `json:"fields"`

	fullName string
}

// Option customises document construction.
type Option func(*builder)

type builder struct {
	now   func() time.Time
	newID func() string
}

// WithClock overrides the generation time source.
func WithClock(now func() time.Time) Option {
	return func(b *builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithIDGenerator overrides the export id source.
func WithIDGenerator(fn func() string) Option {
	return func(b *builder) {
		if fn != nil {
			b.newID = fn
		}
	}
}

// New builds the export document for an accepted outcome. Fields follow the
// variant's declaration order and empty optional fields are skipped. Values
// are exported unescaped.
func New(v variant.Variant, accepted processor.Accepted, options ...Option) Document {
	b := builder{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&b)
	}

	sub := accepted.Submission
	doc := Document{
		ExportID:    b.newID(),
		Variant:     v.Name,
		ReferenceID: accepted.ReferenceID,
		Program:     accepted.Program.Name,
		GeneratedAt: b.now().UTC(),
		fullName:    html.UnescapeString(sub.Value(submission.FieldFullName)),
	}
	for _, field := range v.Fields {
		entry := Entry{Field: field.Name, Label: field.Label}
		if field.Multi {
			for _, value := range sub.List(field.Name) {
				entry.Values = append(entry.Values, html.UnescapeString(value))
			}
			if len(entry.Values) == 0 {
				continue
			}
		} else {
			value := sub.Value(field.Name)
			if field.Name == submission.FieldProgram {
				value = accepted.Program.Name
			}
			if value == "" {
				continue
			}
			entry.Value = html.UnescapeString(value)
		}
		doc.Fields = append(doc.Fields, entry)
	}
	return doc
}

// FileName returns "<slug(fullName)>-<referenceId>.json".
func (d Document) FileName() string {
	stem := slug.Make(d.fullName)
	if stem == "" {
		stem = fallbackFileStem
	}
	if d.ReferenceID == "" {
		return stem + ".json"
	}
	return fmt.Sprintf("%s-%s.json", stem, d.ReferenceID)
}

// JSON encodes the document with two-space indentation.
func (d Document) JSON() ([]byte, error) {
	payload, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encode document: %w", err)
	}
	return payload, nil
}

// DataURI encodes the document as a base64 data URI usable as a download
// link target.
func (d Document) DataURI() (string, error) {
	payload, err := d.JSON()
	if err != nil {
		return "", err
	}
	return "data:" + ContentType + ";base64," + base64.StdEncoding.EncodeToString(payload), nil
}
