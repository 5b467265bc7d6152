package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/framelog/internal/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List pipelines defined in the configuration",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	names := cfg.ListPipelines()
	if len(names) == 0 {
		cmd.Println("No pipelines defined")
		return nil
	}

	cmd.Printf("Pipelines (%d):\n", len(names))
	for _, name := range names {
		p := cfg.Pipelines[name]
		cmd.Printf("  %-24s %s source, %d steps\n", name, p.Source.Type, len(p.Steps))
	}
	return nil
}
