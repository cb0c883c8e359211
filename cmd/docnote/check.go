package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docnote/internal/diagnostic"
	"docnote/internal/lint"
)

func newCheckCmd(a *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check [packages...]",
		Short: "Report malformed and misspelled annotations",
		Long: `Parse the doc comment of every documented declaration and report
strict-typed values that fail to convert, and string values that start
with a near miss of a registered type tag. Exits non-zero on errors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := a.load(args)
			if err != nil {
				return err
			}

			diags := lint.NewChecker(a.reader, a.stringer().Base).Check(x)

			printDiagnostics(cmd.OutOrStdout(), diags, quiet)

			if diags.HasErrors() {
				return fmt.Errorf("annotation check failed with %d error(s)", len(diags.Errors))
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide informational messages")

	return cmd
}

func printDiagnostics(w io.Writer, diags diagnostic.Diagnostics, quiet bool) {
	palette := map[diagnostic.DiagnosticSeverity]*color.Color{
		diagnostic.DiagnosticError:   color.New(color.FgRed, color.Bold),
		diagnostic.DiagnosticWarning: color.New(color.FgYellow),
		diagnostic.DiagnosticInfo:    color.New(color.FgCyan),
	}

	enabled := colorEnabled(w)
	for _, c := range palette {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, d := range diags.All() {
		if quiet && d.Severity == diagnostic.DiagnosticInfo {
			continue
		}

		fmt.Fprintf(w, "%s %s\n", palette[d.Severity].Sprintf("%-7s", d.Severity), d)
	}
}
