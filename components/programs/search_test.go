package programs

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/catalog"
)

func TestClampLimit(t *testing.T) {
	opts := NewOptions(WithDefaultLimit(5), WithMaxLimit(10))
	cases := []struct {
		in, want int
	}{
		{-3, 0},
		{0, 5},
		{7, 7},
		{50, 10},
	}
	for _, tc := range cases {
		if got := clampLimit(tc.in, opts); got != tc.want {
			t.Fatalf("clampLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSearch_CarriesAccentAndKnown(t *testing.T) {
	got := Search(testCatalog(t).Programs(), "com", 10)
	want := []Option{
		{Code: "CS", Name: "Computer Science", Emoji: "💻", Color: "#4f46e5", Known: true},
		{Code: "EC", Name: "Electronics & Communication", Color: catalog.NeutralColor, Known: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_EmptyQueryKeepsCatalogOrder(t *testing.T) {
	got := Search(testCatalog(t).Programs(), "  ", 3)
	codes := make([]string, 0, len(got))
	for _, option := range got {
		codes = append(codes, option.Code)
	}
	if diff := cmp.Diff([]string{"CS", "IT", "EC"}, codes); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
}

func TestNewOptions_Defaults(t *testing.T) {
	opts := NewOptions(WithDefaultLimit(-1), WithRoutePath(""), WithMaxLimit(0))
	if opts.DefaultLimit != defaultLimit || opts.RoutePath != defaultRoutePath || opts.MaxLimit != defaultMaxLimit {
		t.Fatalf("defaults not restored: %#v", opts)
	}
}
