package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/emitter/internal/pubsub"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of emitter",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "emitter v%s\n", pubsub.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
