package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/goalstack"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of goalstack",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "goalstack version %s\n", strings.TrimSpace(goalstack.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
