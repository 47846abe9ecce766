package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/flicker-bff/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "bff",
	Short: "Flicker backend-for-frontend",
	Long:  `Aggregates the catalog, user and recommendation services behind one HTTP API that always answers with a status envelope.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a JSON or YAML config file (overrides BFF_CONFIG_PATH)")
}

// loadConfig honours --config before falling back to the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := os.Setenv("BFF_CONFIG_PATH", path); err != nil {
			return nil, err
		}
	}
	return config.Load()
}
