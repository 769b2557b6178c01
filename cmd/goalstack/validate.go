package main

import (
	"fmt"

	"github.com/aretw0/goalstack/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [problem...]",
	Short: "Check problem documents",
	Long: `Validates problem files or catalog problems without planning them.
With no arguments every problem in the catalog is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := catalogFrom(cmd)
		if err != nil {
			return err
		}
		defer catalog.Close()

		printer, err := printerFrom(cmd)
		if err != nil {
			return err
		}

		refs := args
		if len(refs) == 0 {
			if refs, err = catalog.Source.List(cmd.Context()); err != nil {
				return err
			}
		}

		invalid, err := cli.Validate(cmd.Context(), catalog.Source, printer, refs)
		if err != nil {
			return err
		}
		if invalid > 0 {
			return fmt.Errorf("%d of %d problems are invalid", invalid, len(refs))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
