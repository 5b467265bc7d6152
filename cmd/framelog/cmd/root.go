package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile    string
	logLevel   string
	logFormat  string
	flagDebug  bool
	flagSilent bool
	flagNoCopy bool
	flagMemory bool
)

var rootCmd = &cobra.Command{
	Use:   "framelog",
	Short: "Traced tabular pipelines",
	Long: `A CLI tool for running tabular data pipelines with per-step
instrumentation: every operation is intercepted and reported with its
row/column delta, dtype changes, elapsed time, and optional memory delta,
without changing what the operation returns.

Features:
  - Configurable operation allow-lists for frames and series
  - High- or low-fidelity before-snapshots (deep copy vs reference)
  - Idempotent enable/disable and nested suspend/resume
  - CSV and MySQL pipeline sources`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "framelog.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Trace overrides
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "trace-verbose", false,
		"Also report internally triggered operations")
	rootCmd.PersistentFlags().BoolVar(&flagSilent, "silent", false,
		"Compute statistics without emitting trace output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCopy, "no-copy", false,
		"Skip the pre-operation deep copy (low-fidelity capture)")
	rootCmd.PersistentFlags().BoolVar(&flagMemory, "memory", false,
		"Record memory deltas per step")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel  string
	LogFormat string
	Verbose   bool
	Silent    bool
	NoCopy    bool
	Memory    bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		Verbose:   flagDebug,
		Silent:    flagSilent,
		NoCopy:    flagNoCopy,
		Memory:    flagMemory,
	}
}
