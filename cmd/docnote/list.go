package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"docnote/internal/analyze"
	"docnote/internal/common"
)

func newListCmd(a *app) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list [packages...]",
		Short: "Tabulate annotated declarations",
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := a.load(args)
			if err != nil {
				return err
			}

			return writeTable(cmd.OutOrStdout(),
				[]string{"PACKAGE", "DECL", "KIND", "LOCATION", "COUNT", "ANNOTATIONS"},
				a.listRows(x, kind), "no annotated declarations")
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "only declarations of this kind: type, func, method, field, const, var")

	return cmd
}

func (a *app) listRows(x *analyze.DocIndex, kind string) [][]string {
	s := a.stringer()

	var rows [][]string
	for _, d := range x.All() {
		if !d.HasDoc() || (kind != "" && d.Kind.String() != kind) {
			continue
		}

		b, err := a.reader.DeclAnnotations(d)
		if err != nil {
			rows = append(rows, []string{common.PkgAlias(d.ID.PkgPath), s.DeclString(d), d.Kind.String(), s.Location(d), "-", "parse error"})
			continue
		}

		if b.Len() == 0 {
			continue
		}

		names := make([]string, 0, b.Len())
		for _, name := range b.Names() {
			names = append(names, "@"+name)
		}

		rows = append(rows, []string{
			common.PkgAlias(d.ID.PkgPath),
			s.DeclString(d),
			d.Kind.String(),
			s.Location(d),
			strconv.Itoa(b.Len()),
			strings.Join(names, " "),
		})
	}

	return rows
}
