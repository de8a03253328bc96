package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// topicsExportCmd represents the topics export command
var topicsExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the catalog to a JSON file",
	Long: `Write every cataloged topic, built-in and loaded, to a JSON file in the
format accepted by --catalog and EMITTER_CATALOG.

Examples:
  emitter topics export topics.json
  emitter topics export all.json --catalog extra.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Topics.SaveCatalog(afero.NewOsFs(), args[0]); err != nil {
			return fmt.Errorf("failed to export catalog: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d topics to %s\n", a.Topics.Count(), args[0])
		return nil
	},
}

func init() {
	topicsCmd.AddCommand(topicsExportCmd)
}
