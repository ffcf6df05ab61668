package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelcheck/internal/subtitles"
)

func newSubsCommand() *cobra.Command {
	subsCmd := &cobra.Command{
		Use:         "subs",
		Short:       "Subtitle utilities",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}
	subsCmd.AddCommand(newSubsFindCommand())
	return subsCmd
}

func newSubsFindCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "find <video>",
		Short: "List external subtitle files belonging to a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches := subtitles.Find(args[0])

			if jsonOutput {
				if matches == nil {
					matches = []string{}
				}
				return writeJSON(cmd, matches)
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintln(out, "No subtitle files found")
				return nil
			}
			for _, match := range matches {
				fmt.Fprintf(out, "%s (%s)\n", match, subtitles.FormatForPath(match))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	return cmd
}
