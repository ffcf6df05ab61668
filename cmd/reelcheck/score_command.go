package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reelcheck/internal/media"
	"reelcheck/internal/media/ffprobe"
	"reelcheck/internal/naming"
	"reelcheck/internal/rating"
	"reelcheck/internal/subtitles"
)

func newScoreCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var recordPath string

	cmd := &cobra.Command{
		Use:   "score <file>",
		Short: "Probe and score one media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path := args[0]
			var record media.Record
			if recordPath != "" {
				data, err := os.ReadFile(recordPath)
				if err != nil {
					return fmt.Errorf("read record file: %w", err)
				}
				record, err = media.DecodeRecord(data)
				if err != nil {
					return fmt.Errorf("decode record file: %w", err)
				}
				if record.Path == "" {
					record.Path = path
				}
			} else {
				extractor := ffprobe.New(cfg.FFprobeBinary())
				record, err = extractor.Extract(cmd.Context(), path)
				if err != nil {
					return err
				}
			}

			if external := subtitles.Find(path); len(external) > 0 {
				record = record.WithExternalSubtitles(subtitles.FormatForPath, external)
			}

			outcome := rating.Score(record, cfg.RatingPolicy())

			if jsonOutput {
				return writeJSON(cmd, scoreReport{
					Path:            record.Path,
					Title:           displayTitleForPath(record.Path),
					Score:           outcome.Score,
					Classification:  outcome.Classification.String(),
					Issues:          outcome.Issues,
					Recommendations: outcome.Recommendations,
					Record:          record,
				})
			}

			printOutcome(cmd, record, outcome)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON")
	cmd.Flags().StringVar(&recordPath, "record", "", "Score a previously probed record JSON file instead of running ffprobe")
	return cmd
}

type scoreReport struct {
	Path            string       `json:"path"`
	Title           string       `json:"title"`
	Score           int          `json:"score"`
	Classification  string       `json:"classification"`
	Issues          []string     `json:"issues"`
	Recommendations []string     `json:"recommendations"`
	Record          media.Record `json:"record"`
}

func displayTitleForPath(path string) string {
	base := filepath.Base(path)
	return naming.DisplayTitle(naming.Normalize(base))
}

func printOutcome(cmd *cobra.Command, record media.Record, outcome rating.Outcome) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	fmt.Fprintf(out, "%s\n", displayTitleForPath(record.Path))
	fmt.Fprintf(out, "  Score:          %d/100\n", outcome.Score)
	fmt.Fprintf(out, "  Classification: %s\n", colorizeClassification(outcome.Classification, colorize))
	fmt.Fprintf(out, "  Container:      %s  Video: %s  Bit depth: %s\n",
		record.Container, orDash(record.VideoCodec), bitDepthLabel(record.BitDepth))

	if len(outcome.Issues) == 0 {
		fmt.Fprintln(out, "  No issues found")
		return
	}
	fmt.Fprintln(out, "  Issues:")
	for i, issue := range outcome.Issues {
		fmt.Fprintf(out, "    - %s: %s\n", issue, outcome.Recommendations[i])
	}
}

func colorizeClassification(c rating.Classification, colorize bool) string {
	label := c.String()
	if !colorize {
		return label
	}
	switch c {
	case rating.ClassificationOptimal:
		return ansiGreen + label + ansiReset
	case rating.ClassificationGood:
		return ansiYellow + label + ansiReset
	default:
		return ansiRed + label + ansiReset
	}
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func bitDepthLabel(depth int) string {
	if depth == 0 {
		return "unknown"
	}
	return strconv.Itoa(depth) + "-bit"
}
