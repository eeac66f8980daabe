// Package cli provides the command-line interface for delulu-meter.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/markdave123-py/delulu-meter/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors keeps cobra from printing this itself.
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "delulu",
		Short: "Relationship metrics from WhatsApp chat exports",
		Long: `delulu parses an exported WhatsApp chat and reports who starts the
conversations, how fast each side replies, how the mood moves day by day,
and an overall harmony score.

Run "delulu analyze chat.txt" for a one-off report or "delulu serve" to
expose the same analysis over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
