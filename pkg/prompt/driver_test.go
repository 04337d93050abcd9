package prompt

import (
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"
)

func TestTranslateSurveyErr(t *testing.T) {
	if got := translateSurveyErr(terminal.InterruptErr); !errors.Is(got, ErrAborted) {
		t.Fatalf("interrupt should map to ErrAborted, got %v", got)
	}
	other := errors.New("boom")
	if got := translateSurveyErr(other); got != other {
		t.Fatalf("other errors should pass through, got %v", got)
	}
}

func TestIndexHelpers(t *testing.T) {
	options := []string{"Cricket", "Football", "Chess"}
	if got := indexOf(options, "Chess"); got != 2 {
		t.Fatalf("indexOf = %d", got)
	}
	if got := indexOf(options, "Golf"); got != -1 {
		t.Fatalf("indexOf missing = %d", got)
	}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"Chess", "Cricket"})); diff != "" {
		t.Fatalf("indicesOf mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Football"}, defaultsFromIndices(options, []int{1, 7})); diff != "" {
		t.Fatalf("defaultsFromIndices mismatch (-want +got):\n%s", diff)
	}
}
