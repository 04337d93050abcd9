package html

import (
	"fmt"
	htmlstd "html"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/processor"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/submission"
	"github.com/goliatone/go-regform/pkg/variant"
)

const accentVar = "--accent"

func (r *Renderer) pageData(view render.View, opts render.RenderOptions, cssVars map[string]string) map[string]any {
	documentTitle := view.Variant.Title
	if view.Kind == render.ViewConfirmation {
		documentTitle += ": submitted"
	}
	return map[string]any{
		"page": map[string]any{
			"title":         view.Variant.Title,
			"documentTitle": documentTitle,
			"description": view.Variant.Description,
			"submitLabel": view.Variant.SubmitLabel,
			"action":      opts.Action,
			"variant":     view.Variant.Name,
		},
		"classes":      chromeClasses(),
		"theme":        r.themeData(opts.Theme, cssVars),
		"inlineStyles": r.inlineStyles,
	}
}

func (r *Renderer) formData(view render.View, opts render.RenderOptions) (map[string]any, error) {
	data := r.pageData(view, opts, themeVars(opts.Theme))
	classes := chromeClasses()
	fields := make([]map[string]any, 0, len(view.Variant.Fields))
	markup := make([]string, 0, len(view.Variant.Fields))
	for _, field := range view.Variant.Fields {
		fd := fieldData(field, view.Programs, opts)
		html, err := r.templates.RenderTemplate(fieldTemplate, map[string]any{
			"field":   fd,
			"classes": classes,
		})
		if err != nil {
			return nil, fmt.Errorf("html renderer: render field %q: %w", field.Name, err)
		}
		fields = append(fields, fd)
		markup = append(markup, html)
	}
	data["fields"] = fields
	data["fieldsHTML"] = markup
	data["formErrors"] = render.MergeFormErrors(opts.FormErrors)
	data["hiddenFields"] = hiddenFields(opts.HiddenFields)
	return data, nil
}

func (r *Renderer) confirmationData(view render.View, accepted processor.Accepted, opts render.RenderOptions) map[string]any {
	vars := themeVars(opts.Theme)
	if vars == nil {
		vars = make(map[string]string, 1)
	}
	if color := strings.TrimSpace(accepted.Program.Color); color != "" {
		vars[accentVar] = color
	}
	data := r.pageData(view, opts, vars)

	confirmation := map[string]any{
		"name":        accepted.Submission.Value(submission.FieldFullName),
		"referenceId": accepted.ReferenceID,
		"program": map[string]any{
			"code":  accepted.Program.Code,
			"name":  accepted.Program.Name,
			"emoji": accepted.Program.Emoji,
			"color": accepted.Program.Color,
		},
		"entries": confirmationEntries(view.Variant, accepted),
	}
	if doc := view.Export; doc != nil {
		if href, err := doc.DataURI(); err == nil {
			confirmation["download"] = map[string]any{
				"href":     href,
				"fileName": doc.FileName(),
			}
		}
	}
	data["confirmation"] = confirmation
	return data
}

func fieldData(field variant.Field, programs []catalog.Program, opts render.RenderOptions) map[string]any {
	errors := opts.Errors[field.Name]
	value, values := lookupValue(opts.Values, field)

	options := field.Options
	if field.Widget == variant.WidgetProgram {
		options = programOptions(programs)
	}
	optionData := make([]map[string]any, 0, len(options))
	for _, opt := range options {
		optionData = append(optionData, map[string]any{
			"value":   opt.Value,
			"label":   opt.Label,
			"checked": isChosen(opt.Value, value, values),
		})
	}

	return map[string]any{
		"name":        field.Name,
		"id":          controlID(field.Name),
		"inputName":   field.InputName(),
		"label":       field.Label,
		"widget":      field.Widget,
		"inputType":   inputType(field.Widget),
		"placeholder": field.Placeholder,
		"help":        field.Help,
		"required":    field.Required,
		"value":       value,
		"options":     optionData,
		"errors":      errors,
		"invalid":     len(errors) > 0,
	}
}

func confirmationEntries(v variant.Variant, accepted processor.Accepted) []map[string]any {
	sub := accepted.Submission
	entries := make([]map[string]any, 0, len(v.Fields))
	for _, field := range v.Fields {
		var value string
		switch {
		case field.Name == submission.FieldProgram:
			value = htmlstd.EscapeString(strings.TrimSpace(accepted.Program.Emoji + " " + accepted.Program.Name))
		case field.Multi:
			value = strings.Join(sub.List(field.Name), ", ")
		default:
			value = sub.Value(field.Name)
		}
		if value == "" {
			continue
		}
		entries = append(entries, map[string]any{
			"field": field.Name,
			"label": field.Label,
			"value": value,
		})
	}
	return entries
}

func lookupValue(values map[string]any, field variant.Field) (string, []string) {
	raw, ok := values[field.Name]
	if !ok {
		return "", nil
	}
	switch v := raw.(type) {
	case string:
		if field.Multi {
			return "", []string{v}
		}
		return v, nil
	case []string:
		if field.Multi {
			return "", v
		}
		if len(v) > 0 {
			return v[0], nil
		}
	}
	return "", nil
}

func isChosen(option, value string, values []string) bool {
	if value != "" {
		return strings.TrimSpace(value) == option
	}
	for _, v := range values {
		if strings.TrimSpace(v) == option {
			return true
		}
	}
	return false
}

func programOptions(programs []catalog.Program) []variant.Option {
	out := make([]variant.Option, 0, len(programs))
	for _, p := range programs {
		out = append(out, variant.Option{Value: p.Code, Label: p.Name})
	}
	return out
}

func hiddenFields(fields map[string]string) []map[string]string {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([]map[string]string, 0, len(names))
	for _, name := range names {
		out = append(out, map[string]string{"name": name, "value": fields[name]})
	}
	return out
}

func (r *Renderer) themeData(cfg *theme.RendererConfig, vars map[string]string) map[string]any {
	stylesheet := r.stylesheet
	out := map[string]any{}
	if cfg != nil {
		out["name"] = cfg.Theme
		out["variant"] = cfg.Variant
		if cfg.AssetURL != nil {
			if href := cfg.AssetURL("stylesheet"); href != "" {
				stylesheet = href
			}
		}
	}
	out["stylesheet"] = stylesheet
	out["style"] = cssVarsStyle(vars)
	return out
}

func themeVars(cfg *theme.RendererConfig) map[string]string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return nil
	}
	out := make(map[string]string, len(cfg.CSSVars))
	for key, value := range cfg.CSSVars {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := strings.TrimSpace(vars[key])
		if value == "" {
			continue
		}
		parts = append(parts, key+": "+value)
	}
	return strings.Join(parts, "; ")
}

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "regform-" + trimmed
}

func inputType(widget string) string {
	switch widget {
	case variant.WidgetEmail:
		return "email"
	case variant.WidgetTel:
		return "tel"
	case variant.WidgetNumber:
		return "number"
	default:
		return "text"
	}
}
