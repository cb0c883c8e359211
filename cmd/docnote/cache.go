package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCmd(a *app) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the parse cache",
		Long: `Manage the parse cache. Entries are keyed by the doc comment text
alone, so clear a file cache after changing the aliases in the config file.`,
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached parse result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := a.reader.Cache()
			if store == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "cache is disabled")
				return nil
			}

			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear %s cache: %w", a.cfg.Cache.Backend, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s cache cleared\n", a.cfg.Cache.Backend)

			return nil
		},
	})

	return cacheCmd
}
