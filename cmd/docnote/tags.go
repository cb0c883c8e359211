package main

import (
	"github.com/spf13/cobra"

	"docnote/internal/config"
)

func newTagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the registered type tags and constructors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := a.reader.Parser().Registry()

			var rows [][]string
			for _, tag := range reg.Tags() {
				kind := "type"
				if target, ok := a.cfg.Aliases[tag]; ok {
					kind = "alias of " + target
				}

				rows = append(rows, []string{tag, kind})
			}

			for _, id := range reg.Constructors() {
				rows = append(rows, []string{id, "constructor"})
			}

			return writeTable(cmd.OutOrStdout(), []string{"TAG", "KIND"}, rows, "no tags registered")
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Marshal(a.cfg)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}
}
