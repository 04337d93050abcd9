package export_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/export"
	"github.com/goliatone/go-regform/pkg/processor"
	"github.com/goliatone/go-regform/pkg/submission"
	"github.com/goliatone/go-regform/pkg/variant"
)

func TestNew_OrdersFieldsAndSkipsEmpty(t *testing.T) {
	v, err := variant.MustDefault().Get("profile")
	if err != nil {
		t.Fatalf("variant: %v", err)
	}
	accepted := processor.Accepted{
		Variant: "profile",
		Submission: submission.New(map[string]string{
			submission.FieldFullName: "Jane Doe",
			submission.FieldBio:      "Tom &amp; Jerry",
			submission.FieldEmail:    "jane@example.com",
			submission.FieldPhone:    "+919876543210",
			submission.FieldProgram:  "CS",
		}, map[string][]string{
			submission.FieldSports: {"Chess"},
		}),
		Program:     catalog.MustDefault().Resolve("CS"),
		ReferenceID: "STU-12345",
	}
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	doc := export.New(v, accepted,
		export.WithClock(func() time.Time { return fixed }),
		export.WithIDGenerator(func() string { return "export-1" }),
	)

	want := []export.Entry{
		{Field: "fullName", Label: "Full Name", Value: "Jane Doe"},
		{Field: "email", Label: "Email Address", Value: "jane@example.com"},
		{Field: "phone", Label: "Phone Number", Value: "+919876543210"},
		{Field: "program", Label: "Program Applied For", Value: "Computer Science"},
		{Field: "sports", Label: "Sports", Values: []string{"Chess"}},
		{Field: "bio", Label: "Short Bio", Value: "Tom & Jerry"},
	}
	if diff := cmp.Diff(want, doc.Fields); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	if doc.ExportID != "export-1" || !doc.GeneratedAt.Equal(fixed) {
		t.Fatalf("unexpected id/time: %s %s", doc.ExportID, doc.GeneratedAt)
	}
	if got := doc.FileName(); got != "jane-doe-STU-12345.json" {
		t.Fatalf("file name = %q", got)
	}
}

func TestNew_DefaultIDIsUUID(t *testing.T) {
	v, _ := variant.MustDefault().Get(variant.DefaultName)
	doc := export.New(v, processor.Accepted{ReferenceID: "REG-10000"})
	if len(doc.ExportID) != 36 || strings.Count(doc.ExportID, "-") != 4 {
		t.Fatalf("expected uuid export id, got %q", doc.ExportID)
	}
	if got := doc.FileName(); got != "registration-REG-10000.json" {
		t.Fatalf("fallback file name = %q", got)
	}
}

func TestDocument_DataURI(t *testing.T) {
	v, _ := variant.MustDefault().Get(variant.DefaultName)
	doc := export.New(v, processor.Accepted{
		Submission:  submission.New(map[string]string{submission.FieldFullName: "Jane Doe"}, nil),
		ReferenceID: "REG-54321",
		Program:     catalog.Program{Code: "IT", Name: "Information Technology"},
	})

	uri, err := doc.DataURI()
	if err != nil {
		t.Fatalf("data uri: %v", err)
	}
	prefix := "data:application/json;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("unexpected data uri prefix: %s", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["referenceId"] != "REG-54321" || decoded["program"] != "Information Technology" {
		t.Fatalf("unexpected payload: %v", decoded)
	}
}
