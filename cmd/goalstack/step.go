package main

import (
	"os"

	"github.com/aretw0/goalstack/internal/cli"
	"github.com/spf13/cobra"
)

var stepCmd = &cobra.Command{
	Use:   "step <problem>",
	Short: "Walk through the goal stack one step at a time",
	Long: `Prints the agenda and then every planner step with the rule it applied.
On a terminal each step waits for Enter ('r' runs to the end, 'q' quits).
Pipes and --no-wait print every step at once.`,
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

		noWait, _ := cmd.Flags().GetBool("no-wait")
		interactive := !noWait && printer.Format == cli.FormatText && isTerminal(os.Stdin) && isTerminal(os.Stdout)

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.HandleExecutionError(cli.Step(ctx, catalog.Source, printer, cli.StepOptions{
			RunOptions:  opts,
			Interactive: interactive,
			In:          cmd.InOrStdin(),
			Prompt:      cmd.ErrOrStderr(),
		}))
	},
}

func init() {
	rootCmd.AddCommand(stepCmd)

	stepCmd.Flags().Int("max-steps", -1, "Step bound; negative keeps the problem's own bound")
	stepCmd.Flags().Bool("no-wait", false, "Print every step without waiting for input")
}
