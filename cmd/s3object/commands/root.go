package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// Execute runs the root command.
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "s3object",
		Short: "S3 object resource-type provider",
		Long: `s3object manages the lifecycle of a single S3 object as a declarative
resource: create, update, delete, read, and list.

Mutations are reconciled asynchronously: the handler performs the backend
call once, then polls with a read-back until the change is durable. When run
from this CLI the polling loop is driven in-process; under an orchestrator
each poll is a separate invocation resumed through the callback context.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(newCreateCommand())
	rootCmd.AddCommand(newUpdateCommand())
	rootCmd.AddCommand(newDeleteCommand())
	rootCmd.AddCommand(newReadCommand())
	rootCmd.AddCommand(newListCommand())

	return rootCmd
}
