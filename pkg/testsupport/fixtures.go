// Package testsupport holds golden-file helpers and shared fixtures for
// package tests.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/processor"
	"github.com/goliatone/go-regform/pkg/refid"
	"github.com/goliatone/go-regform/pkg/submission"
	"github.com/goliatone/go-regform/pkg/variant"
)

// FixedSource always draws n, producing reference number 10000+n.
type FixedSource int

// IntN implements refid.Source.
func (f FixedSource) IntN(int) int { return int(f) }

// Processor returns a processor whose reference ids are deterministic.
func Processor(n int, options ...processor.Option) *processor.Processor {
	opts := append([]processor.Option{processor.WithReferenceGenerator(refid.New(FixedSource(n)))}, options...)
	return processor.New(opts...)
}

// MustVariant fetches a bundled variant.
func MustVariant(t *testing.T, name string) variant.Variant {
	t.Helper()
	v, err := variant.MustDefault().Get(name)
	if err != nil {
		t.Fatalf("variant %s: %v", name, err)
	}
	return v
}

// ValidApplicant is a submission accepted by every bundled variant.
func ValidApplicant() submission.Submission {
	return submission.New(map[string]string{
		submission.FieldFullName:  "Jane Doe",
		submission.FieldEmail:     "jane@example.com",
		submission.FieldPhone:     "+919876543210",
		submission.FieldProgram:   "CS",
		submission.FieldCETNumber: "CET-2024-001",
		submission.FieldPct10:     "88.4",
		submission.FieldPct12:     "91.2",
		submission.FieldGender:    "Female",
		submission.FieldBio:       "I like building things.",
	}, map[string][]string{
		submission.FieldSports:  {"Chess"},
		submission.FieldHobbies: {"Reading", "Coding"},
	})
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
