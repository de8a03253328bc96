package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/emitter/cmd/emitter/internal/display"
)

// topicsValidateCmd represents the topics validate command
var topicsValidateCmd = &cobra.Command{
	Use:   "validate <topic-name>",
	Short: "Validate a topic name and definition",
	Long: `Check that a topic name is well formed (lowercase dot-separated segments)
and, when the topic is cataloged, that its definition follows the scope
rules: core topics have no owner and use a reserved prefix, app topics
have an owner and do not.

Examples:
  emitter topics validate gpu.device.status
  emitter topics validate Render.Frame`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		nameErr := a.Topics.ValidateTopicName(name)

		var defErr error
		topic, found := a.Topics.Get(name)
		if found {
			defErr = a.Topics.Validate(topic)
		} else if nameErr == nil {
			defErr = fmt.Errorf("topic %q not found", name)
		}

		display.ValidationResult(cmd.OutOrStdout(), name, topic, nameErr, defErr)
		if nameErr != nil {
			return nameErr
		}
		return defErr
	},
}

func init() {
	topicsCmd.AddCommand(topicsValidateCmd)
}
