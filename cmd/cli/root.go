package main

import (
	"github.com/spf13/cobra"

	"github.com/classtools/push-relay/internal/config"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "relayctl",
	Short: "relayctl is the command-line interface for the push relay.",
	Long:  `A CLI for operating the push relay service, covering administrative tasks like re-enqueueing stored deliveries whose publish failed.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config.yaml (defaults to the working directory)")
}

// loadConfig loads the same configuration the server uses, so CLI operations
// target the same table and queue.
func loadConfig() (*config.Config, error) {
	return config.Load(configFile)
}
