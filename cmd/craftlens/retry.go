package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/craftlens/craftlens/internal/runner"
)

func newRetryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Resubmit queued reports without running new analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := runner.Options{StateDir: stateDir(cmd), Version: version}
			delivered, pending, err := runner.RetryOnly(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("retrying queued reports: %w", err)
			}
			fmt.Printf("Delivered %d queued reports, %d still pending\n", delivered, pending)
			return nil
		},
	}
}
