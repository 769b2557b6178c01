package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/goalstack/internal/cli"
	"github.com/aretw0/goalstack/internal/dto"
	"github.com/spf13/cobra"
)

var operatorsCmd = &cobra.Command{
	Use:   "operators",
	Short: "List the operator schemas",
	RunE: func(cmd *cobra.Command, args []string) error {
		printer, err := printerFrom(cmd)
		if err != nil {
			return err
		}
		schemas := dto.Operators()
		if printer.Format != cli.FormatText {
			return printer.Structured(schemas)
		}

		out := cmd.OutOrStdout()
		for _, s := range schemas {
			fmt.Fprintf(out, "%s\n", s.Name)
			fmt.Fprintf(out, "  pre: %s\n", strings.Join(s.Preconditions, " ^ "))
			fmt.Fprintf(out, "  add: %s\n", strings.Join(s.Adds, " ^ "))
			fmt.Fprintf(out, "  del: %s\n", strings.Join(s.Deletes, " ^ "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(operatorsCmd)
}
