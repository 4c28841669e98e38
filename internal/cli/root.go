// Package cli provides the command-line interface for anylog.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getsentry/anylog/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "anylog",
		Short: "Split log lines into timestamp and message",
		Long: `anylog takes free-form log lines and splits each one into a recognized
timestamp and the remaining message.

It detects the timestamp convention per line from a fixed catalog of
grammars (syslog, ISO 8601, common log format, and friends), so mixed
inputs need no format configuration. Partial timestamps are completed
deterministically: a missing year comes from a reference clock, a missing
UTC offset from a configurable fallback zone.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewSplitCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
