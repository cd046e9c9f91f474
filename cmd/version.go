package cmd

import (
	goruntime "runtime"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("metacheck CLI\n")
		cmd.Printf("Version:  %s\n", version)
		cmd.Printf("Commit:   %s\n", commit)
		cmd.Printf("Built:    %s\n", date)
		cmd.Printf("Runtime:  %s\n", goruntime.Version())
	},
}
