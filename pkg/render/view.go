package render

import (
	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/export"
	"github.com/goliatone/go-regform/pkg/processor"
	"github.com/goliatone/go-regform/pkg/variant"
)

// ViewKind selects which page a renderer produces.
type ViewKind string

const (
	// ViewForm is the form page, blank or re-rendered with errors.
	ViewForm ViewKind = "form"
	// ViewConfirmation is the page shown after an accepted submission.
	ViewConfirmation ViewKind = "confirmation"
)

// View is what renderers draw: a variant and, after a post, its outcome.
type View struct {
	Kind     ViewKind
	Variant  variant.Variant
	Programs []catalog.Program
	Outcome  processor.Outcome
	Export   *export.Document
}

// FormView is a blank or re-rendered form.
func FormView(v variant.Variant, programs []catalog.Program) View {
	return View{Kind: ViewForm, Variant: v, Programs: programs}
}

// OutcomeView picks the form page for rejected outcomes and the confirmation
// page for accepted ones. doc may be nil.
func OutcomeView(v variant.Variant, programs []catalog.Program, outcome processor.Outcome, doc *export.Document) View {
	view := View{Kind: ViewForm, Variant: v, Programs: programs, Outcome: outcome}
	if _, ok := outcome.(processor.Accepted); ok {
		view.Kind = ViewConfirmation
		view.Export = doc
	}
	return view
}

// Accepted returns the accepted outcome, if any.
func (v View) Accepted() (processor.Accepted, bool) {
	accepted, ok := v.Outcome.(processor.Accepted)
	return accepted, ok
}

// Rejected returns the rejected outcome, if any.
func (v View) Rejected() (processor.Rejected, bool) {
	rejected, ok := v.Outcome.(processor.Rejected)
	return rejected, ok
}
