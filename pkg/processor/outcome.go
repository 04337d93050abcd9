package processor

import (
	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/submission"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Outcome status values.
const (
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Outcome is the result of processing one submission. It is either Accepted
// or Rejected; no other implementations exist.
type Outcome interface {
	Status() string
	VariantName() string
	sealed()
}

// Accepted carries the sanitized submission of a valid post together with the
// resolved program and a fresh reference id.
type Accepted struct {
	Variant     string
	Submission  submission.Submission
	Program     catalog.Program
	ReferenceID string
}

// Status reports StatusAccepted.
func (Accepted) Status() string { return StatusAccepted }

// VariantName reports the variant that accepted the submission.
func (a Accepted) VariantName() string { return a.Variant }

func (Accepted) sealed() {}

// Rejected carries the original submission, so the form can be re-rendered
// with what the user typed, and the per-field errors.
type Rejected struct {
	Variant    string
	Submission submission.Submission
	Errors     validation.Result
}

// Status reports StatusRejected.
func (Rejected) Status() string { return StatusRejected }

// VariantName reports the variant that rejected the submission.
func (r Rejected) VariantName() string { return r.Variant }

func (Rejected) sealed() {}
