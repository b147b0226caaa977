package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	// Skips the config pre-run so version works with a broken config file.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("chatpack version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
