package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/craftlens/craftlens/internal/store"
)

// newStatusCommand renders the diagnostic surface: queue depth, audit
// history, and accumulated counters. The pipeline itself stays silent;
// this is the on-demand view of what it has been doing.
func newStatusCommand() *cobra.Command {
	var auditLimit int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show queue depth, counters, and recent submission history",
		RunE: func(cmd *cobra.Command, args []string) error {
			local := store.Open(stateDir(cmd))

			queue := local.LoadQueue()
			obs := local.LoadObservations()

			fmt.Printf("Queue: %d pending (cap %d)\n", len(queue), store.QueueCap)
			fmt.Printf("Sessions analyzed: %d\n", obs.Counters.SessionsAnalyzed)
			fmt.Printf("Reports submitted: %d, queued: %d\n", obs.Counters.ReportsSubmitted, obs.Counters.ReportsQueued)

			if status, ok := local.LoadStatus(); ok && status.LatestVersion != "" {
				fmt.Printf("Latest client version: %s\n", status.LatestVersion)
			}

			audit := local.LoadAudit()
			if len(audit) == 0 {
				return nil
			}
			if len(audit) > auditLimit {
				audit = audit[len(audit)-auditLimit:]
			}

			fmt.Println("\nRecent submissions:")
			for _, rec := range audit {
				outcome := "ok"
				if !rec.Success {
					outcome = rec.Error
				}
				fmt.Printf("  %s  %-12s  %s\n", rec.Timestamp.Format("2006-01-02 15:04"), rec.SessionID, outcome)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&auditLimit, "limit", 10, "Number of audit entries to show")
	return cmd
}
