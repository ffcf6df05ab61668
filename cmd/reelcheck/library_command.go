package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"reelcheck/internal/config"
	"reelcheck/internal/fileutil"
	"reelcheck/internal/rating"
	"reelcheck/internal/services"
	"reelcheck/internal/store"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Library entry management",
	}
	libraryCmd.AddCommand(newLibraryAddCommand(ctx))
	libraryCmd.AddCommand(newLibraryScanCommand(ctx))
	libraryCmd.AddCommand(newLibraryListCommand(ctx))
	return libraryCmd
}

func newLibraryAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>...",
		Short: "Register media files as library entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, s *store.Store) error {
				out := cmd.OutOrStdout()
				for _, path := range args {
					absolute, err := config.ExpandPath(path)
					if err != nil {
						return err
					}
					entry, err := s.UpsertEntry(cmd.Context(), absolute, filepath.Base(absolute))
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Added entry %d: %s\n", entry.ID, entry.Path)
				}
				return nil
			})
		},
	}
}

func newLibraryScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <directory>",
		Short: "Walk a directory and register every video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, s *store.Store) error {
				root, err := config.ExpandPath(args[0])
				if err != nil {
					return err
				}
				paths, err := fileutil.FindVideoFiles(root)
				if err != nil {
					return fmt.Errorf("scan %s: %w", root, err)
				}
				for _, path := range paths {
					if _, err := s.UpsertEntry(cmd.Context(), path, filepath.Base(path)); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registered %d video files under %s\n", len(paths), root)
				return nil
			})
		},
	}
}

func newLibraryListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var legacy bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List library entries with their latest scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, s *store.Store) error {
				entries, err := s.ListEntries(cmd.Context())
				if err != nil {
					return err
				}

				type entryReport struct {
					ID             int64  `json:"id"`
					Path           string `json:"path"`
					Score          *int   `json:"score,omitempty"`
					Classification string `json:"classification"`
					DirectPlays    int    `json:"direct_plays"`
					Remuxes        int    `json:"remuxes"`
				}

				reports := make([]entryReport, 0, len(entries))
				for _, entry := range entries {
					report := entryReport{ID: entry.ID, Path: entry.Path}

					outcome, err := s.LatestOutcome(cmd.Context(), entry.ID)
					switch {
					case err == nil:
						score := outcome.Score
						report.Score = &score
						report.Classification = outcome.Classification.String()
					case errors.Is(err, services.ErrNotFound):
						report.Classification = "unscored"
					default:
						return err
					}

					direct, remux, err := s.PlayCounts(cmd.Context(), entry.ID)
					if err != nil {
						return err
					}
					report.DirectPlays = direct
					report.Remuxes = remux

					// Entries without probe data fall back to play counts.
					if report.Score == nil && legacy {
						report.Classification = rating.LegacyBucket(direct, remux, cfg.LegacyThresholds()).String() + " (legacy)"
					}
					reports = append(reports, report)
				}

				if jsonOutput {
					return writeJSON(cmd, reports)
				}

				rows := make([][]string, 0, len(reports))
				for _, report := range reports {
					score := "-"
					if report.Score != nil {
						score = strconv.Itoa(*report.Score)
					}
					rows = append(rows, []string{
						strconv.FormatInt(report.ID, 10),
						report.Path,
						score,
						report.Classification,
						strconv.Itoa(report.DirectPlays),
						strconv.Itoa(report.Remuxes),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Path", "Score", "Classification", "Direct", "Remux"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignRight, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Classify unscored entries from play counts")
	return cmd
}
