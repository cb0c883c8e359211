package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docnote/internal/analyze"
	"docnote/internal/bag"
	"docnote/internal/common"
	"docnote/internal/config"
)

// declEntry is one declaration in dump output.
type declEntry struct {
	Decl        string   `json:"decl" yaml:"decl"`
	Kind        string   `json:"kind" yaml:"kind"`
	Package     string   `json:"package" yaml:"package"`
	Location    string   `json:"location" yaml:"location"`
	Annotations *bag.Bag `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Error       string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func newDumpCmd(a *app) *cobra.Command {
	var (
		f   filter
		all bool
	)

	cmd := &cobra.Command{
		Use:   "dump [packages...]",
		Short: "Print the annotations of documented declarations",
		Long: `Print the annotations of every documented declaration in the given
packages ("./..." by default). Declarations without annotations are skipped
unless --all is set. A declaration whose doc comment fails to parse is
reported with its error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.compile(); err != nil {
				return err
			}

			x, err := a.load(args)
			if err != nil {
				return err
			}

			entries := a.dump(x, &f, all)

			if a.cfg.Output.Format == config.FormatTable {
				return writeTable(cmd.OutOrStdout(),
					[]string{"DECL", "ANNOTATION", "KIND", "VALUE"},
					entryRows(entries), "no annotations found")
			}

			return writeStructured(cmd.OutOrStdout(), a.cfg.Output.Format, entries)
		},
	}

	cmd.Flags().StringVarP(&f.namespace, "namespace", "n", "", "only annotations under this namespace, with the prefix stripped")
	cmd.Flags().StringVarP(&f.grep, "grep", "g", "", "only annotations whose name matches this regular expression")
	cmd.Flags().BoolVar(&all, "all", false, "include declarations without annotations")

	return cmd
}

func (a *app) dump(x *analyze.DocIndex, f *filter, all bool) []declEntry {
	s := a.stringer()

	var entries []declEntry
	for _, d := range x.All() {
		if !d.HasDoc() && !all {
			continue
		}

		e := declEntry{
			Decl:     s.DeclString(d),
			Kind:     d.Kind.String(),
			Package:  d.ID.PkgPath,
			Location: s.Location(d),
		}

		b, err := a.reader.DeclAnnotations(d)
		if err != nil {
			a.log.Warn("failed to read annotations", zap.Stringer("decl", d.ID), zap.Error(err))
			e.Error = err.Error()
			entries = append(entries, e)

			continue
		}

		b = f.apply(b)
		if b.Len() == 0 && !all {
			continue
		}

		e.Annotations = b
		entries = append(entries, e)
	}

	return entries
}

func entryRows(entries []declEntry) [][]string {
	var rows [][]string
	for _, e := range entries {
		if e.Error != "" {
			rows = append(rows, []string{e.Decl, "-", "error", e.Error})
			continue
		}

		for _, r := range bagRows(e.Annotations) {
			rows = append(rows, append([]string{e.Decl}, r...))
		}
	}

	return rows
}

func newParseCmd(a *app) *cobra.Command {
	var f filter

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse one doc comment from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.compile(); err != nil {
				return err
			}

			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			b, err := a.reader.Annotations(raw)
			if err != nil {
				return err
			}

			b = f.apply(b)

			if a.cfg.Output.Format == config.FormatTable {
				return writeTable(cmd.OutOrStdout(), []string{"ANNOTATION", "KIND", "VALUE"}, bagRows(b), "no annotations found")
			}

			return writeStructured(cmd.OutOrStdout(), a.cfg.Output.Format, b)
		},
	}

	cmd.Flags().StringVarP(&f.namespace, "namespace", "n", "", "only annotations under this namespace, with the prefix stripped")
	cmd.Flags().StringVarP(&f.grep, "grep", "g", "", "only annotations whose name matches this regular expression")

	return cmd
}

// readInput reads the named file, or stdin when no file or "-" is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	path, ok := common.First(args)
	if !ok || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return string(data), nil
}
