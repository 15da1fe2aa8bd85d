package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/craftlens/craftlens/internal/runner"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		since     time.Duration
		maxFiles  int
		aggregate bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Discover and analyze recent sessions, then submit reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := runner.Options{
				StateDir:  stateDir(cmd),
				Since:     time.Now().Add(-since),
				MaxFiles:  maxFiles,
				Aggregate: aggregate,
				Version:   version,
			}

			summary, err := runner.Run(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("running analysis: %w", err)
			}

			fmt.Printf("Discovered %d transcripts, analyzed %d\n", summary.Discovered, summary.Analyzed)
			fmt.Printf("Submitted %d, queued %d, retried %d\n", summary.Submitted, summary.Queued, summary.Retried)
			return nil
		},
	}

	cmd.Flags().DurationVar(&since, "since", 24*time.Hour, "Analyze sessions modified within this window")
	cmd.Flags().IntVar(&maxFiles, "max-files", 10, "Maximum transcripts per source")
	cmd.Flags().BoolVar(&aggregate, "aggregate", false, "Submit one aggregated summary instead of per-session reports")

	return cmd
}
