package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/framelog/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Validate loads the configuration and checks operation allow-lists,
pipeline sources, and logging settings without running anything.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	cmd.Printf("Configuration valid: %d pipeline(s)\n", len(cfg.Pipelines))
	return nil
}
