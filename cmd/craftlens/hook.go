package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/craftlens/craftlens/internal/runner"
)

// hookPayload is the trigger body piped in by a monitored tool's
// session-end hook.
type hookPayload struct {
	TranscriptPath string `json:"transcript_path"`
	Source         string `json:"source"`
}

// newHookCommand is the zero-argument filter entry point monitored tools
// invoke at session end. It must never fail past this boundary: any
// problem is swallowed and the command exits zero so the tool's own
// workflow is unaffected.
func newHookCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "hook",
		Short:  "Process one session from a tool hook (reads JSON from stdin)",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() {
				if r := recover(); r != nil {
					slog.Debug("hook recovered", "panic", r)
				}
			}()

			var payload hookPayload
			if err := json.NewDecoder(os.Stdin).Decode(&payload); err != nil {
				slog.Debug("hook payload unreadable", "error", err)
				return nil
			}
			if payload.TranscriptPath == "" || payload.Source == "" {
				return nil
			}

			opts := runner.Options{
				StateDir: stateDir(cmd),
				Version:  version,
			}
			if _, err := runner.RunFile(cmd.Context(), payload.TranscriptPath, payload.Source, opts); err != nil {
				slog.Debug("hook run failed", "error", err)
			}
			return nil
		},
	}
}
