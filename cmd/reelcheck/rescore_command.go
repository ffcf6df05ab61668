package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reelcheck/internal/batch"
	"reelcheck/internal/config"
	"reelcheck/internal/media/ffprobe"
	"reelcheck/internal/store"
)

func newRescoreCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var workers int

	cmd := &cobra.Command{
		Use:   "rescore",
		Short: "Probe and score every library entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, s *store.Store) error {
				workerCount := cfg.Workers.Rescore
				if workers > 0 {
					workerCount = workers
				}

				rescorer := batch.NewRescorer(
					s,
					ffprobe.New(cfg.FFprobeBinary()),
					cfg.RatingPolicy(),
					workerCount,
					ctx.ensureLogger(),
					ctx.batchLockPath(cfg),
				)
				result, err := rescorer.Run(cmd.Context())
				if err != nil {
					return err
				}

				if jsonOutput {
					return writeJSON(cmd, result)
				}

				rows := make([][]string, 0, len(result.Items))
				for _, item := range result.Items {
					score := strconv.Itoa(item.Score)
					classification := item.Classification.String()
					if item.Err != nil {
						score = "-"
						classification = "error: " + item.Err.Error()
					}
					rows = append(rows, []string{
						strconv.FormatInt(item.EntryID, 10),
						item.Path,
						score,
						classification,
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Path", "Score", "Classification"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
				))
				fmt.Fprintf(out, "Scored %d, failed %d", result.Scored, result.Failed)
				if result.Canceled {
					fmt.Fprint(out, " (canceled)")
				}
				fmt.Fprintln(out)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	cmd.Flags().IntVar(&workers, "workers", 0, "Override the configured worker count")
	return cmd
}
