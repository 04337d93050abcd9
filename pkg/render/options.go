package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without changing the view.
type RenderOptions struct {
	// Action is the URL the form posts to. Renderers fall back to the current
	// page when empty.
	Action string
	// Values pre-populates rendered controls. Scalars map to strings and
	// multi-value fields map to []string.
	Values map[string]any
	// Errors surfaces per-field validation feedback keyed by field name.
	Errors map[string][]string
	// FormErrors are messages not tied to a single field.
	FormErrors []string
	// HiddenFields are emitted as hidden inputs inside the form.
	HiddenFields map[string]string
	// Theme carries resolved tokens, partials and asset resolution.
	Theme *theme.RendererConfig
}
