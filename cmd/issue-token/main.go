package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "issue-token",
		Short:        "Development tools for the store inventory API",
		SilenceUsage: true,
	}
	cmd.AddCommand(newIssueCommand())
	return cmd
}
