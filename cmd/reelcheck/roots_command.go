package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reelcheck/internal/config"
	"reelcheck/internal/store"
)

func newRootsCommand(ctx *commandContext) *cobra.Command {
	rootsCmd := &cobra.Command{
		Use:   "roots",
		Short: "Library root management",
	}
	rootsCmd.AddCommand(newRootsAddCommand(ctx))
	rootsCmd.AddCommand(newRootsListCommand(ctx))
	rootsCmd.AddCommand(newRootsDisableCommand(ctx))
	return rootsCmd
}

func newRootsAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <directory>",
		Short: "Register a top-level library directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, s *store.Store) error {
				path, err := config.ExpandPath(args[0])
				if err != nil {
					return err
				}
				root, err := s.AddRoot(cmd.Context(), path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added root %d: %s\n", root.ID, root.Path)
				return nil
			})
		},
	}
}

func newRootsListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List library roots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, s *store.Store) error {
				roots, err := s.ListRoots(cmd.Context())
				if err != nil {
					return err
				}

				if jsonOutput {
					return writeJSON(cmd, roots)
				}

				rows := make([][]string, 0, len(roots))
				for _, root := range roots {
					rows = append(rows, []string{
						strconv.FormatInt(root.ID, 10),
						root.Path,
						yesNo(root.Active),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Path", "Active"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	return cmd
}

func newRootsDisableCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "disable <id>",
		Short: "Exclude a root from reconciliation without deleting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, s *store.Store) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("parse root id: %w", err)
				}
				if err := s.SetRootActive(cmd.Context(), id, false); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Disabled root %d\n", id)
				return nil
			})
		},
	}
}
