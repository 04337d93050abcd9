package catalog

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}

	if diff := cmp.Diff([]string{"CS", "IT", "EC"}, c.Codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}

	cs := c.Resolve("CS")
	if cs.Name != "Computer Science" || !cs.Known() {
		t.Fatalf("unexpected CS entry: %#v", cs)
	}
	if got := c.Resolve(" EC ").Name; got != "Electronics & Communication" {
		t.Fatalf("expected trimmed lookup, got %q", got)
	}
}

func TestResolveFallsBackToUnknownProgram(t *testing.T) {
	c := MustDefault()

	got := c.Resolve("ME")
	want := Program{Code: "ME", Name: UnknownProgramName, Emoji: NeutralEmoji, Color: NeutralColor}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fallback mismatch (-want +got):\n%s", diff)
	}
	if got.Known() {
		t.Fatalf("fallback must not report Known")
	}

	var nilCatalog *Catalog
	if nilCatalog.Resolve("CS").Name != UnknownProgramName {
		t.Fatalf("nil catalog should resolve to the fallback")
	}
}

func TestLoadJSONAndValidation(t *testing.T) {
	c, err := Load(strings.NewReader(`{"programs":[{"code":"ME","name":"Mechanical"},{"code":"CE"}]}`))
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	programs := c.Programs()
	if len(programs) != 2 {
		t.Fatalf("expected 2 programs, got %d", len(programs))
	}
	if programs[1].Name != "CE" || programs[1].Color != NeutralColor {
		t.Fatalf("expected defaults applied, got %#v", programs[1])
	}

	if _, err := Load(strings.NewReader("programs:\n  - code: CS\n  - code: CS\n")); err == nil {
		t.Fatalf("expected duplicate code error")
	}
	if _, err := Load(strings.NewReader("  ")); err == nil {
		t.Fatalf("expected empty document error")
	}
	if _, err := New(Program{Name: "No code"}); err == nil {
		t.Fatalf("expected empty code error")
	}
}

func TestLoadFile(t *testing.T) {
	c, err := LoadFile("")
	if err != nil {
		t.Fatalf("empty path: %v", err)
	}
	if diff := cmp.Diff([]string{"CS", "IT", "EC"}, c.Codes()); diff != "" {
		t.Fatalf("empty path should load the default catalog (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "programs.yaml")
	if err := os.WriteFile(path, []byte("programs:\n  - code: ME\n    name: Mechanical\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	c, err = LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if got := c.Resolve("ME").Name; got != "Mechanical" {
		t.Fatalf("expected Mechanical, got %q", got)
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
