package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/goalstack/internal/cli"
	"github.com/aretw0/goalstack/internal/presentation/scene"
	"github.com/aretw0/goalstack/pkg/problem"
	"github.com/spf13/cobra"
)

var errReadOnly = errors.New("catalog is read-only; use --redis to store problems")

var problemsCmd = &cobra.Command{
	Use:     "problems",
	Aliases: []string{"ls"},
	Short:   "List the problems in the catalog",
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

		names, err := catalog.Source.List(cmd.Context())
		if err != nil {
			return err
		}
		if printer.Format != cli.FormatText {
			return printer.Structured(names)
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var problemsShowCmd = &cobra.Command{
	Use:   "show <problem>",
	Short: "Print a problem with its start and goal scenes",
	Args:  cobra.ExactArgs(1),
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

		doc, err := cli.ResolveProblem(cmd.Context(), catalog.Source, args[0])
		if err != nil {
			return err
		}
		if printer.Format != cli.FormatText {
			return printer.Structured(doc)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (max %d steps)\n", doc.Name, doc.Bound())
		if doc.Description != "" {
			fmt.Fprintf(out, "%s\n", doc.Description)
		}
		fmt.Fprintf(out, "\nstart:\n%s\ngoal:\n%s", scene.Render(doc.Start), scene.Render(doc.Goal))
		return nil
	},
}

var problemsPutCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Validate a problem file and store it in the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := catalogFrom(cmd)
		if err != nil {
			return err
		}
		defer catalog.Close()

		store, ok := catalog.Store()
		if !ok {
			return errReadOnly
		}

		doc, err := problem.Load(args[0])
		if err != nil {
			return err
		}
		if err := doc.Validate(); err != nil {
			return err
		}

		if catalog.Locker != nil {
			unlock, err := catalog.Locker.Lock(cmd.Context(), "problem:"+doc.Name, 10*time.Second)
			if err != nil {
				return fmt.Errorf("failed to lock %s: %w", doc.Name, err)
			}
			defer func() { _ = unlock(cmd.Context()) }()
		}

		if err := store.Save(cmd.Context(), doc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "stored %s\n", doc.Name)
		return nil
	},
}

var problemsDeleteCmd = &cobra.Command{
	Use:   "delete <problem>",
	Short: "Remove a problem from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := catalogFrom(cmd)
		if err != nil {
			return err
		}
		defer catalog.Close()

		store, ok := catalog.Store()
		if !ok {
			return errReadOnly
		}
		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(problemsCmd)
	problemsCmd.AddCommand(problemsShowCmd, problemsPutCmd, problemsDeleteCmd)
}
