package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgo/shepherd/api/internal/catalog"
)

func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Ministry catalog tools",
	}

	var file string
	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate a ministry catalog against the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(file)
			if err != nil {
				return err
			}
			source := file
			if source == "" {
				source = "embedded catalog"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d ministries OK\n", source, cat.Len())
			return nil
		},
	}
	validate.Flags().StringVar(&file, "file", "", "Catalog JSON file (default: embedded)")

	cmd.AddCommand(validate)
	return cmd
}
