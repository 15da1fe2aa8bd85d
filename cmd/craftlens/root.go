package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/craftlens/craftlens/internal/config"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "craftlens",
		Short: "Craftlens - proficiency reports from AI assistant sessions",
		Long: `Craftlens analyzes AI assistant session transcripts into structured
proficiency reports and delivers them to the Craftlens service.

Analysis is heuristic and fully local; reports are sanitized of personal
information before anything leaves the machine.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("state-dir", config.DefaultStateDirPath(), "Directory for local pipeline state")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newAnalyzeCommand())
	cmd.AddCommand(newHookCommand())
	cmd.AddCommand(newRetryCommand())
	cmd.AddCommand(newStatusCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

func stateDir(cmd *cobra.Command) string {
	dir, err := cmd.Flags().GetString("state-dir")
	if err != nil || dir == "" {
		return config.DefaultStateDirPath()
	}
	return dir
}
