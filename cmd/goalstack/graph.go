package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/goalstack/internal/cli"
	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <problem>",
	Short: "Export the plan as a Mermaid diagram",
	Long:  `Solves the problem and outputs a Mermaid diagram (graph TD) of the states the plan passes through.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOptions(cmd, args[0])
		if err != nil {
			return err
		}
		catalog, err := catalogFrom(cmd)
		if err != nil {
			return err
		}
		defer catalog.Close()

		position, _ := cmd.Flags().GetInt("highlight")
		output, err := cli.Graph(cmd.Context(), catalog.Source, opts, position)
		if err != nil && !errors.Is(err, domain.ErrIterationLimitExceeded) {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output)
		return err
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().Int("max-steps", -1, "Step bound; negative keeps the problem's own bound")
	graphCmd.Flags().Int("highlight", -1, "Highlight the state after this many operators")
}
