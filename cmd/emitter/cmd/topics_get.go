package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/emitter/cmd/emitter/internal/display"
)

var getOutputFormat string

// topicsGetCmd represents the topics get command
var topicsGetCmd = &cobra.Command{
	Use:   "get <topic-name>",
	Short: "Show details for a topic",
	Long: `Show the name, scope, owner, payload type, description, example and
metadata of a cataloged topic.

Examples:
  emitter topics get gpu.device.status
  emitter topics get demo.value --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		topic, found := a.Topics.Get(args[0])
		if !found {
			return fmt.Errorf("topic %q not found, use 'emitter topics list' to see available topics", args[0])
		}
		return display.TopicDetails(cmd.OutOrStdout(), topic, getOutputFormat)
	},
}

func init() {
	topicsCmd.AddCommand(topicsGetCmd)

	topicsGetCmd.Flags().StringVarP(&getOutputFormat, "format", "f", "table", "Output format (table, json)")
}
