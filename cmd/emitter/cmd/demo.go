package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the subscribe/publish/unsubscribe walkthrough",
	Long: `Subscribe two listeners A and B to demo.value, publish 1, unsubscribe A,
then publish 2. Each step is printed as it happens:

  publish demo.value 1
  A(1)
  B(1)
  unsubscribe A
  publish demo.value 2
  B(2)

Set EMITTER_FORWARD_TOPICS=demo.value to also relay the values onto the
asynchronous bus.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		if err := a.RunDemo(cmd.Context(), out); err != nil {
			return fmt.Errorf("demo failed: %w", err)
		}

		stats := a.Dispatcher.Stats()
		fmt.Fprintf(out, "\npublished=%d delivered=%d failed=%d\n", stats.Published, stats.Delivered, stats.Failed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
