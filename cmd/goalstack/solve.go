package main

import (
	"github.com/aretw0/goalstack/internal/cli"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve <problem>",
	Short: "Compute a plan for a problem",
	Long: `Runs the goal-stack planner to completion and prints the plan.
<problem> is a path to a .yaml/.yml/.json document or the name of a catalog problem.
When the step bound is reached the partial plan is printed and the command fails.`,
	Args: cobra.ExactArgs(1),
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

		printer, err := printerFrom(cmd)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.HandleExecutionError(cli.Solve(ctx, catalog.Source, printer, opts))
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().Int("max-steps", -1, "Step bound; negative keeps the problem's own bound")
	solveCmd.Flags().Bool("trace", false, "Include every step record in json/yaml output")
}

// runOptions reads the flags shared by solve, step and graph.
func runOptions(cmd *cobra.Command, ref string) (cli.RunOptions, error) {
	logger, err := loggerFrom(cmd)
	if err != nil {
		return cli.RunOptions{}, err
	}
	maxSteps, _ := cmd.Flags().GetInt("max-steps")
	trace, _ := cmd.Flags().GetBool("trace")
	return cli.RunOptions{Ref: ref, MaxSteps: maxSteps, Trace: trace, Logger: logger}, nil
}
