package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/framelog/internal/config"
	"github.com/dbsmedya/framelog/internal/logger"
	"github.com/dbsmedya/framelog/internal/pipeline"
	"github.com/dbsmedya/framelog/internal/report"
	"github.com/dbsmedya/framelog/internal/trace"
)

var runCmd = &cobra.Command{
	Use:   "run <pipeline>",
	Short: "Run a pipeline with per-step tracing",
	Long: `Run loads the pipeline's source frame, enables instrumentation for the
duration of the run, applies each configured step, and prints one trace
entry per operation.

Example:
  framelog run clean_orders --config framelog.yaml --memory`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	pipelineName := args[0]

	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.Verbose, overrides.Silent, overrides.NoCopy, overrides.Memory)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Infow("Starting pipeline run",
		"pipeline", pipelineName,
		"config", GetConfigFile(),
	)

	// Structured records for json logging, aligned console lines otherwise.
	var reporter trace.Reporter
	if cfg.Logging.Format == "json" {
		reporter = report.NewZap(log)
	} else {
		reporter = report.NewConsole(cmd.OutOrStdout())
	}
	ctrl := trace.New(reporter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := pipeline.NewRunner(cfg, log, ctrl)
	result, err := runner.Run(ctx, pipelineName)
	if err != nil {
		return fmt.Errorf("pipeline %q failed: %w", pipelineName, err)
	}

	cmd.Printf("\nPipeline %q: %d steps, %d rows x %d columns remaining (%s)\n",
		pipelineName, len(result.Steps), result.Frame.Len(),
		len(result.Frame.ColumnNames()), result.Duration)
	return nil
}
