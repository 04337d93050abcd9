package variant

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/submission"
	"github.com/goliatone/go-regform/pkg/validation"
)

// LoadFS walks the provided filesystem and parses JSON/YAML variant files.
// When fsys is nil or no variant files are present, the returned registry is
// empty.
func LoadFS(fsys fs.FS) (*Registry, error) {
	registry := NewRegistry()
	if fsys == nil {
		return registry, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isVariantFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("variant: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawName, raw := range doc.Variants {
			name := strings.TrimSpace(rawName)
			if name == "" {
				return fmt.Errorf("variant: file %s defines an empty variant name", path)
			}
			if registry.Has(name) {
				return fmt.Errorf("variant: duplicate variant %q (file %s)", name, path)
			}
			v, err := compile(raw, name, path)
			if err != nil {
				return err
			}
			if err := registry.Register(v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return registry, nil
}

type documentFile struct {
	Variants map[string]variantFile `json:"variants" yaml:"variants"`
}

type variantFile struct {
	Title           string      `json:"title" yaml:"title"`
	Description     string      `json:"description" yaml:"description"`
	ReferencePrefix string      `json:"referencePrefix" yaml:"referencePrefix"`
	SubmitLabel     string      `json:"submitLabel" yaml:"submitLabel"`
	Fields          []fieldFile `json:"fields" yaml:"fields"`
}

type fieldFile struct {
	Name        string            `json:"name" yaml:"name"`
	Label       string            `json:"label" yaml:"label"`
	Widget      string            `json:"widget" yaml:"widget"`
	Placeholder string            `json:"placeholder" yaml:"placeholder"`
	Help        string            `json:"help" yaml:"help"`
	Required    bool              `json:"required" yaml:"required"`
	Options     []optionFile      `json:"options" yaml:"options"`
	Rules       []ruleFile        `json:"rules" yaml:"rules"`
	Messages    map[string]string `json:"messages" yaml:"messages"`
}

type ruleFile struct {
	Name    string `json:"name" yaml:"name"`
	Param   string `json:"param" yaml:"param"`
	Message string `json:"message" yaml:"message"`
}

// optionFile accepts either a bare string or a {value, label} mapping.
type optionFile struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

func (o *optionFile) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		o.Value = node.Value
		o.Label = node.Value
		return nil
	}
	type plain optionFile
	var out plain
	if err := node.Decode(&out); err != nil {
		return err
	}
	*o = optionFile(out)
	return nil
}

func (o *optionFile) UnmarshalJSON(data []byte) error {
	var scalar string
	if err := json.Unmarshal(data, &scalar); err == nil {
		o.Value = scalar
		o.Label = scalar
		return nil
	}
	type plain optionFile
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*o = optionFile(out)
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("variant: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("variant: parse %s: invalid JSON or YAML", source)
}

func compile(raw variantFile, name, source string) (Variant, error) {
	v := Variant{
		Name:            name,
		Title:           strings.TrimSpace(raw.Title),
		Description:     strings.TrimSpace(raw.Description),
		ReferencePrefix: strings.TrimSpace(raw.ReferencePrefix),
		SubmitLabel:     strings.TrimSpace(raw.SubmitLabel),
		Source:          source,
	}
	if v.Title == "" {
		v.Title = name
	}
	if v.SubmitLabel == "" {
		v.SubmitLabel = "Submit"
	}
	if len(raw.Fields) == 0 {
		return Variant{}, fmt.Errorf("variant: %q (file %s) declares no fields", name, source)
	}

	seen := make(map[string]struct{}, len(raw.Fields))
	for idx, rf := range raw.Fields {
		field, err := compileField(rf)
		if err != nil {
			return Variant{}, fmt.Errorf("variant: %q (file %s) field %d: %w", name, source, idx, err)
		}
		if _, dup := seen[field.Name]; dup {
			return Variant{}, fmt.Errorf("variant: %q (file %s) defines duplicate field %q", name, source, field.Name)
		}
		seen[field.Name] = struct{}{}
		v.Fields = append(v.Fields, field)
	}
	return v, nil
}

func compileField(raw fieldFile) (Field, error) {
	name := strings.TrimSuffix(strings.TrimSpace(raw.Name), "[]")
	if name == "" {
		return Field{}, fmt.Errorf("empty field name")
	}
	widget := strings.TrimSpace(raw.Widget)
	if widget == "" {
		widget = WidgetText
	}
	if !knownWidget(widget) {
		return Field{}, fmt.Errorf("field %q uses unknown widget %q", name, widget)
	}

	label := strings.TrimSpace(raw.Label)
	if label == "" {
		label = name
	}

	field := Field{
		Name:        name,
		Label:       label,
		Widget:      widget,
		Placeholder: strings.TrimSpace(raw.Placeholder),
		Help:        strings.TrimSpace(raw.Help),
		Required:    raw.Required,
		Multi:       widget == WidgetCheckbox || submission.IsListField(name),
	}
	for _, opt := range raw.Options {
		value := strings.TrimSpace(opt.Value)
		if value == "" {
			return Field{}, fmt.Errorf("field %q has an option with an empty value", name)
		}
		optLabel := strings.TrimSpace(opt.Label)
		if optLabel == "" {
			optLabel = value
		}
		field.Options = append(field.Options, Option{Value: value, Label: optLabel})
	}

	spec := validation.FieldSpec{
		Name:            name,
		Label:           label,
		Required:        raw.Required,
		RequiredMessage: raw.Messages["required"],
		Multi:           field.Multi,
	}
	if widget == WidgetProgram {
		spec.Placeholders = []string{validation.ProgramPlaceholder}
		if field.Placeholder == "" {
			field.Placeholder = validation.ProgramPlaceholder
		}
	}
	for _, rr := range raw.Rules {
		rule, err := validation.Lookup(rr.Name, rr.Param)
		if err != nil {
			return Field{}, fmt.Errorf("field %q: %w", name, err)
		}
		spec.Rules = append(spec.Rules, rule.WithMessage(rr.Message))
	}
	if field.HasOptions() && widget != WidgetProgram {
		values := make([]string, 0, len(field.Options))
		for _, opt := range field.Options {
			values = append(values, opt.Value)
		}
		spec.Rules = append(spec.Rules, validation.OneOf(values...).WithMessage(raw.Messages["invalid"]))
	}
	field.Spec = spec
	return field, nil
}

func isVariantFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
