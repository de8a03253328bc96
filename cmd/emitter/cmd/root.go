package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nfrund/emitter/internal/app"
	"github.com/nfrund/emitter/internal/config"
)

var catalogPath string

var rootCmd = &cobra.Command{
	Use:   "emitter",
	Short: "Event dispatcher and graphics helper tooling",
	Long: `emitter drives the in-process event dispatcher and the graphics device helper.

Available commands:
  demo       Run the subscribe/publish/unsubscribe walkthrough
  topics     List, inspect and validate catalog topics
  gpu        Probe the configured graphics backend
  version    Print the version

Configuration is read from the environment and an optional .env file.

Use "emitter [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadApp builds the application from the environment. The --catalog flag
// overrides EMITTER_CATALOG.
func loadApp() (*app.App, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}

	a, err := app.New(cfg, afero.NewOsFs())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return a, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "JSON topic catalog to load in addition to the built-in topics")
}
