package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/export"
	"github.com/goliatone/go-regform/pkg/processor"
	"github.com/goliatone/go-regform/pkg/prompt"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/jsonview"
	"github.com/goliatone/go-regform/pkg/variant"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitRejected = 2
	exitAborted  = 130
)

func main() {
	variantName := flag.String("variant", variant.DefaultName, "form variant to fill in")
	format := flag.String("format", "pretty", "result format: pretty or json")
	output := flag.String("output", "", "write the export document of an accepted registration to this file")
	catalogFile := flag.String("catalog", "", "program catalog file (bundled catalog if empty)")
	attempts := flag.Int("attempts", prompt.DefaultMaxAttempts, "submission attempts before giving up")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	code, err := run(ctx, os.Stdout, *variantName, *format, *output, *catalogFile, *attempts)
	if err != nil {
		log.Printf("regform-cli: %v", err)
	}
	os.Exit(code)
}

func run(ctx context.Context, out io.Writer, variantName, format, output, catalogFile string, attempts int) (int, error) {
	if format != "pretty" && format != "json" {
		return exitFailure, fmt.Errorf("unknown format %q", format)
	}
	programs, err := catalog.LoadFile(catalogFile)
	if err != nil {
		return exitFailure, err
	}
	v, err := variant.MustDefault().Get(variantName)
	if err != nil {
		return exitFailure, err
	}

	collector, err := prompt.NewCollector(prompt.NewSurveyDriver(out),
		prompt.WithCatalog(programs),
		prompt.WithMaxAttempts(attempts),
	)
	if err != nil {
		return exitFailure, err
	}

	fmt.Fprintf(out, "%s\n%s\n\n", v.Title, v.Description)
	outcome, err := collector.Run(ctx, processor.New(processor.WithCatalog(programs)), v)
	if errors.Is(err, prompt.ErrAborted) {
		fmt.Fprintln(out, "Registration cancelled.")
		return exitAborted, nil
	}
	if err != nil {
		return exitFailure, err
	}

	var doc *export.Document
	if accepted, ok := outcome.(processor.Accepted); ok {
		d := export.New(v, accepted)
		doc = &d
		if output != "" {
			data, err := d.JSON()
			if err != nil {
				return exitFailure, err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return exitFailure, fmt.Errorf("write export: %w", err)
			}
		}
	}

	if format == "json" {
		body, err := jsonview.New(jsonview.WithIndent("  ")).Render(ctx, render.OutcomeView(v, programs.Programs(), outcome, doc), render.RenderOptions{})
		if err != nil {
			return exitFailure, err
		}
		fmt.Fprintln(out, string(body))
	} else {
		printPretty(out, outcome, doc, output)
	}

	if outcome == nil || outcome.Status() != processor.StatusAccepted {
		return exitRejected, nil
	}
	return exitOK, nil
}

func printPretty(out io.Writer, outcome processor.Outcome, doc *export.Document, output string) {
	accepted, ok := outcome.(processor.Accepted)
	if !ok || doc == nil {
		fmt.Fprintln(out, "Registration was not accepted.")
		return
	}
	fmt.Fprintf(out, "\nRegistration accepted. Reference ID: %s\n", accepted.ReferenceID)
	fmt.Fprintf(out, "Program: %s %s\n\n", accepted.Program.Emoji, accepted.Program.Name)
	width := 0
	for _, entry := range doc.Fields {
		if len(entry.Label) > width {
			width = len(entry.Label)
		}
	}
	for _, entry := range doc.Fields {
		value := entry.Value
		if len(entry.Values) > 0 {
			value = strings.Join(entry.Values, ", ")
		}
		fmt.Fprintf(out, "  %-*s  %s\n", width, entry.Label, value)
	}
	if output != "" {
		fmt.Fprintf(out, "\nExport written to %s\n", output)
	}
}
