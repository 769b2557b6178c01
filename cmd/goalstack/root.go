package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/goalstack/internal/cli"
	"github.com/aretw0/goalstack/internal/logging"
	"github.com/aretw0/goalstack/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "goalstack",
	Short: "Goalstack plans blocks-world problems with a STRIPS goal stack",
	Long: `Goalstack computes operator plans that turn one arrangement of blocks into another.
Problems come from YAML/JSON files, a loam catalog directory or a Redis catalog.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isTerminal(os.Stdout) {
			tui.PrintBanner(cmd.OutOrStdout())
		}
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")
	flags.String("catalog", "", "Directory of problem documents (loam)")
	flags.String("redis", "", "Redis address of a shared problem catalog (overrides --catalog)")
	flags.String("redis-password", "", "Redis password")
	flags.Int("redis-db", 0, "Redis database")
	flags.String("redis-prefix", "", "Key prefix for the Redis catalog")
	flags.StringP("format", "o", cli.FormatText, "Output format: text, json or yaml")
	flags.Bool("plain", false, "Disable colors and markdown rendering")
}

// loggerFrom builds the stderr logger selected by --log-level.
func loggerFrom(cmd *cobra.Command) (*slog.Logger, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// catalogFrom opens the catalog selected by the persistent flags.
func catalogFrom(cmd *cobra.Command) (*cli.Catalog, error) {
	flags := cmd.Flags()
	var opts cli.CatalogOptions
	opts.Dir, _ = flags.GetString("catalog")
	opts.RedisAddr, _ = flags.GetString("redis")
	opts.RedisPassword, _ = flags.GetString("redis-password")
	opts.RedisDB, _ = flags.GetInt("redis-db")
	opts.RedisPrefix, _ = flags.GetString("redis-prefix")
	return cli.OpenCatalog(opts)
}

// printerFrom builds the stdout printer. Rich output is used only on terminals.
func printerFrom(cmd *cobra.Command) (*cli.Printer, error) {
	format, _ := cmd.Flags().GetString("format")
	plain, _ := cmd.Flags().GetBool("plain")
	return cli.NewPrinter(cmd.OutOrStdout(), format, !plain && isTerminal(os.Stdout))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
