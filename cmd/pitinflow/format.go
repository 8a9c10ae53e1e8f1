package main

import (
	"fmt"
	"io"

	"github.com/remeenemee/pos-vodootliv/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(w, e)
		}
		fmt.Fprintln(w)
	}

	printFindings(w, r)

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

// printFindings prints the warnings and info of a report.
func printFindings(w io.Writer, r *validation.Report) {
	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "\nWARNINGS (%d):\n", len(r.Warnings))
		for _, wr := range r.Warnings {
			printResult(w, wr)
		}
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "\nINFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Level, i.Message)
		}
	}
	if len(r.Warnings) > 0 || len(r.Info) > 0 {
		fmt.Fprintln(w)
	}
}

func printResult(w io.Writer, res validation.Result) {
	fmt.Fprintf(w, "  [%s] %s\n", res.Level, res.Message)
	if res.Field != "" && res.ActualValue != nil {
		fmt.Fprintf(w, "    -> %s = %v\n", res.Field, res.ActualValue)
	} else if res.Field != "" {
		fmt.Fprintf(w, "    -> %s\n", res.Field)
	}
	if res.Expected != "" {
		fmt.Fprintf(w, "    expected: %s\n", res.Expected)
	}
	for _, s := range res.Suggestions {
		fmt.Fprintf(w, "    * %s\n", s)
	}
}
