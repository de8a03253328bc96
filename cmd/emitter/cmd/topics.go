package cmd

import (
	"github.com/spf13/cobra"
)

// topicsCmd represents the topics command
var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Explore and validate catalog topics",
	Long: `The topics command inspects the topic catalog: the built-in topics plus any
loaded from a JSON catalog file (--catalog or EMITTER_CATALOG).

Available subcommands:
  list      List catalog topics with optional filtering
  get       Show details for one topic
  validate  Check a topic name and, when cataloged, its definition
  export    Write the catalog to a JSON file

Examples:
  emitter topics list
  emitter topics list --scope core
  emitter topics list --owner render --catalog topics.json
  emitter topics get gpu.device.status
  emitter topics validate render.frame.done
  emitter topics export topics.json

Use "emitter topics [command] --help" for more information about a specific command.`,
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}
