package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/bndr/gotabulate"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"docnote/internal/bag"
	"docnote/internal/config"
)

// filter narrows bags by namespace and name pattern.
type filter struct {
	namespace string
	grep      string

	re *regexp.Regexp
}

func (f *filter) compile() error {
	if f.grep == "" {
		return nil
	}

	re, err := regexp.Compile(f.grep)
	if err != nil {
		return fmt.Errorf("invalid --grep pattern %q: %w", f.grep, err)
	}

	f.re = re

	return nil
}

func (f *filter) apply(b *bag.Bag) *bag.Bag {
	b = b.UseNamespace(f.namespace)
	if f.re != nil {
		b = b.GrepRegexp(f.re)
	}

	return b
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		return nil
	}
}

// writeTable renders rows as a grid. An empty table prints empty instead.
func writeTable(w io.Writer, headers []string, rows [][]string, empty string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, empty)
		return err
	}

	t := gotabulate.Create(rows)
	t.SetHeaders(headers)
	t.SetAlign("left")
	t.SetMaxCellSize(60)
	t.SetWrapStrings(true)

	_, err := fmt.Fprint(w, t.Render("grid"))

	return err
}

// bagRows flattens a bag into name, kind and value columns.
func bagRows(b *bag.Bag) [][]string {
	rows := make([][]string, 0, b.Len())
	for name, v := range b.All() {
		rows = append(rows, []string{"@" + name, v.Kind().String(), v.String()})
	}

	return rows
}

// colorEnabled reports whether w is a terminal.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd())
}
