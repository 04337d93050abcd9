// Package variant describes the registration form variants. Each variant is a
// data document (title, reference prefix, ordered fields) compiled into the
// validation specs the processor runs.
package variant

import (
	"errors"
	"strings"

	"github.com/goliatone/go-regform/pkg/validation"
)

// ErrUnknownVariant is returned when a variant name is not registered.
var ErrUnknownVariant = errors.New("variant: unknown variant")

// DefaultName is the variant served when none is requested.
const DefaultName = "basic"

// Widget names understood by the renderers.
const (
	WidgetText     = "text"
	WidgetEmail    = "email"
	WidgetTel      = "tel"
	WidgetNumber   = "number"
	WidgetTextarea = "textarea"
	WidgetSelect   = "select"
	WidgetProgram  = "program"
	WidgetRadio    = "radio"
	WidgetCheckbox = "checkbox"
)

// Variant is one compiled form definition.
type Variant struct {
	Name            string
	Title           string
	Description     string
	ReferencePrefix string
	SubmitLabel     string
	Source          string
	Fields          []Field
}

// Field is one input of a variant together with its validation spec.
type Field struct {
	Name        string
	Label       string
	Widget      string
	Placeholder string
	Help        string
	Required    bool
	Multi       bool
	Options     []Option
	Spec        validation.FieldSpec
}

// Option is a choice of a radio, checkbox or select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Specs returns the validation specs in field order.
func (v Variant) Specs() []validation.FieldSpec {
	specs := make([]validation.FieldSpec, 0, len(v.Fields))
	for _, field := range v.Fields {
		specs = append(specs, field.Spec)
	}
	return specs
}

// Field returns the named field.
func (v Variant) Field(name string) (Field, bool) {
	for _, field := range v.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames lists field names in declaration order.
func (v Variant) FieldNames() []string {
	names := make([]string, 0, len(v.Fields))
	for _, field := range v.Fields {
		names = append(names, field.Name)
	}
	return names
}

// HasOptions reports whether the field renders a fixed choice list.
func (f Field) HasOptions() bool {
	return len(f.Options) > 0
}

// IsChoice reports whether the widget picks from options.
func (f Field) IsChoice() bool {
	switch f.Widget {
	case WidgetRadio, WidgetCheckbox, WidgetSelect, WidgetProgram:
		return true
	default:
		return false
	}
}

// InputName is the form control name; multi-value fields post as name[].
func (f Field) InputName() string {
	if f.Multi {
		return f.Name + "[]"
	}
	return f.Name
}

func knownWidget(widget string) bool {
	switch strings.TrimSpace(widget) {
	case WidgetText, WidgetEmail, WidgetTel, WidgetNumber, WidgetTextarea,
		WidgetSelect, WidgetProgram, WidgetRadio, WidgetCheckbox:
		return true
	default:
		return false
	}
}
