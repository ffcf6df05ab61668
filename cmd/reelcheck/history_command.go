package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"reelcheck/internal/batch"
	"reelcheck/internal/config"
	"reelcheck/internal/services/playback"
	"reelcheck/internal/store"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Playback history ingestion and reconciliation",
	}
	historyCmd.AddCommand(newHistorySyncCommand(ctx))
	historyCmd.AddCommand(newHistoryRematchCommand(ctx))
	return historyCmd
}

func newHistorySyncCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var sinceFlag string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch playback history and match it against the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, s *store.Store) error {
				var since time.Time
				if sinceFlag != "" {
					parsed, err := time.Parse(time.RFC3339, sinceFlag)
					if err != nil {
						return fmt.Errorf("parse --since (want RFC3339): %w", err)
					}
					since = parsed
				}

				syncer := batch.NewSyncer(
					s,
					sourceOrNil(playback.NewConfiguredClient(cfg)),
					cfg.Workers.Sync,
					ctx.ensureLogger(),
					ctx.batchLockPath(cfg),
				)
				result, err := syncer.Sync(cmd.Context(), since)
				if err != nil {
					return err
				}

				if jsonOutput {
					return writeJSON(cmd, result)
				}
				printSyncResult(cmd, result)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	cmd.Flags().StringVar(&sinceFlag, "since", "", "Only fetch history after this RFC3339 timestamp")
	return cmd
}

func newHistoryRematchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "rematch",
		Short: "Retry matching stored events that never found a library entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, s *store.Store) error {
				syncer := batch.NewSyncer(s, nil, cfg.Workers.Sync, ctx.ensureLogger(), ctx.batchLockPath(cfg))
				result, err := syncer.Rematch(cmd.Context())
				if err != nil {
					return err
				}

				if jsonOutput {
					return writeJSON(cmd, result)
				}
				printSyncResult(cmd, result)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	return cmd
}

// sourceOrNil keeps a typed-nil *playback.Client from masquerading as a
// non-nil EventSource interface.
func sourceOrNil(client *playback.Client) batch.EventSource {
	if client == nil {
		return nil
	}
	return client
}

func printSyncResult(cmd *cobra.Command, result batch.SyncResult) {
	out := cmd.OutOrStdout()
	if result.Fetched > 0 || result.Inserted > 0 || result.Duplicates > 0 {
		fmt.Fprintf(out, "Fetched %d events (%d new, %d already known)\n",
			result.Fetched, result.Inserted, result.Duplicates)
	}
	fmt.Fprintf(out, "Matched %d, still unmatched %d", result.Matched, result.Unmatched)
	if result.Canceled {
		fmt.Fprint(out, " (canceled)")
	}
	fmt.Fprintln(out)
}
