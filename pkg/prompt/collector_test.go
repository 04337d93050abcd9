package prompt_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/processor"
	"github.com/goliatone/go-regform/pkg/prompt"
	"github.com/goliatone/go-regform/pkg/submission"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	multiIdx  [][]int
	confirm   []bool
	textAreas []string

	inputPos   int
	selectPos  int
	multiPos   int
	confirmPos int
	textPos    int

	inputDefaults []string
	infoMessages  []string
	failInput     error
}

func (s *stubDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if s.failInput != nil {
		return "", s.failInput
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.inputDefaults = append(s.inputDefaults, cfg.Default)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ prompt.ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ prompt.SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ prompt.SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ prompt.TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestCollect_ProfileFields(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Jane Doe", "jane@example.com", "+919876543210"},
		selectIdx: []int{2, 1}, // EC; gender after the skip entry
		multiIdx:  [][]int{{4}, {0, 2}},
		textAreas: []string{"Hello there"},
	}
	collector, err := prompt.NewCollector(driver)
	if err != nil {
		t.Fatalf("collector: %v", err)
	}

	sub, err := collector.Collect(context.Background(), testsupport.MustVariant(t, "profile"), submission.Submission{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if got := sub.Value(submission.FieldProgram); got != "EC" {
		t.Fatalf("program = %q", got)
	}
	if got := sub.Value(submission.FieldGender); got != "Female" {
		t.Fatalf("gender = %q", got)
	}
	if diff := cmp.Diff([]string{"Chess"}, sub.List(submission.FieldSports)); diff != "" {
		t.Fatalf("sports mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Reading", "Coding"}, sub.List(submission.FieldHobbies)); diff != "" {
		t.Fatalf("hobbies mismatch (-want +got):\n%s", diff)
	}
	if got := sub.Value(submission.FieldBio); got != "Hello there" {
		t.Fatalf("bio = %q", got)
	}
}

func TestCollect_SkipOptionalChoice(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Jane Doe", "jane@example.com", "9876543210"},
		selectIdx: []int{0, 0},
		multiIdx:  [][]int{nil, nil},
		textAreas: []string{""},
	}
	collector, err := prompt.NewCollector(driver)
	if err != nil {
		t.Fatalf("collector: %v", err)
	}
	sub, err := collector.Collect(context.Background(), testsupport.MustVariant(t, "profile"), submission.Submission{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if sub.Has(submission.FieldGender) || sub.Has(submission.FieldSports) {
		t.Fatalf("skipped fields should be empty: %#v", sub.Values())
	}
	if got := sub.Value(submission.FieldProgram); got != "CS" {
		t.Fatalf("program = %q", got)
	}
}

func TestRun_RetriesWithPriorValues(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"J4ne", "jane@example.com", "Jane Doe", "jane@example.com"},
		selectIdx: []int{0, 0},
		confirm:   []bool{true},
	}
	collector, err := prompt.NewCollector(driver)
	if err != nil {
		t.Fatalf("collector: %v", err)
	}

	outcome, err := collector.Run(context.Background(), testsupport.Processor(42), testsupport.MustVariant(t, "basic"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	accepted, ok := outcome.(processor.Accepted)
	if !ok {
		t.Fatalf("expected Accepted, got %#v", outcome)
	}
	if accepted.ReferenceID != "REG-10042" {
		t.Fatalf("reference id = %q", accepted.ReferenceID)
	}

	if len(driver.infoMessages) != 1 || !strings.Contains(driver.infoMessages[0], "Full Name") {
		t.Fatalf("expected one error report naming Full Name, got %q", driver.infoMessages)
	}
	if diff := cmp.Diff([]string{"", "", "J4ne", "jane@example.com"}, driver.inputDefaults); diff != "" {
		t.Fatalf("input defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_StopsAfterMaxAttempts(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "", "", ""},
		selectIdx: []int{0, 0},
		confirm:   []bool{true},
	}
	collector, err := prompt.NewCollector(driver, prompt.WithMaxAttempts(2))
	if err != nil {
		t.Fatalf("collector: %v", err)
	}

	outcome, err := collector.Run(context.Background(), nil, testsupport.MustVariant(t, "basic"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.Status() != processor.StatusRejected {
		t.Fatalf("expected rejected outcome, got %s", outcome.Status())
	}
	if len(driver.infoMessages) != 2 {
		t.Fatalf("expected two error reports, got %d", len(driver.infoMessages))
	}
	if driver.confirmPos != 1 {
		t.Fatalf("expected a single retry confirmation, got %d", driver.confirmPos)
	}
}

func TestRun_Aborted(t *testing.T) {
	driver := &stubDriver{failInput: prompt.ErrAborted}
	collector, err := prompt.NewCollector(driver)
	if err != nil {
		t.Fatalf("collector: %v", err)
	}
	_, err = collector.Run(context.Background(), nil, testsupport.MustVariant(t, "basic"))
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestNewCollector_RequiresDriver(t *testing.T) {
	if _, err := prompt.NewCollector(nil); !errors.Is(err, prompt.ErrNoDriver) {
		t.Fatalf("expected ErrNoDriver, got %v", err)
	}
}
