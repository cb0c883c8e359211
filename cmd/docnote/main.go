// Package main provides the CLI entrypoint for docnote.
//
// docnote reads @-annotations from Go doc comments:
//   - dump: prints the annotations of every documented declaration
//   - parse: parses a single doc comment from a file or stdin
//   - list: tabulates annotated declarations
//   - check: reports malformed and misspelled annotations
//   - tags: lists the registered type tags
//   - cache clear: drops cached parse results
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(f *os.File, err error) {
	c := color.New(color.FgRed, color.Bold)
	if !colorEnabled(f) {
		c.DisableColor()
	}

	fmt.Fprintf(f, "%s %v\n", c.Sprint("error:"), err)
}
