// Package config provides configuration structures and loading for
// framelog.
package config

// Config represents the complete application configuration.
type Config struct {
	Trace      TraceConfig               `yaml:"trace" mapstructure:"trace"`
	Operations OperationsConfig          `yaml:"operations" mapstructure:"operations"`
	Pipelines  map[string]PipelineConfig `yaml:"pipelines" mapstructure:"pipelines"`
	Logging    LoggingConfig             `yaml:"logging" mapstructure:"logging"`
}

// TraceConfig holds the instrumentation toggles. Every option is
// independent.
type TraceConfig struct {
	Verbose         bool `yaml:"verbose" mapstructure:"verbose"`                   // also record internal operations
	Silent          bool `yaml:"silent" mapstructure:"silent"`                     // compute stats but emit nothing
	FullSignature   bool `yaml:"full_signature" mapstructure:"full_signature"`     // include call arguments in records
	CopyOK          bool `yaml:"copy_ok" mapstructure:"copy_ok"`                   // high-fidelity capture (deep copy)
	CalculateMemory bool `yaml:"calculate_memory" mapstructure:"calculate_memory"` // record memory deltas
	Extras          bool `yaml:"extras" mapstructure:"extras"`                     // instrument the supplementary operations
}

// OperationsConfig overrides the instrumented operation allow-lists.
// Empty lists mean "use the shipped defaults".
type OperationsConfig struct {
	Frame  []string `yaml:"frame" mapstructure:"frame"`
	Series []string `yaml:"series" mapstructure:"series"`
}

// PipelineConfig describes one traced pipeline: where the initial frame
// comes from and which steps to apply to it.
type PipelineConfig struct {
	Source SourceConfig `yaml:"source" mapstructure:"source"`
	Steps  []StepConfig `yaml:"steps" mapstructure:"steps"`
}

// SourceConfig describes the initial dataset. Type is "csv" or "mysql".
// A mysql source either runs Query verbatim or assembles a SELECT from
// Table/Columns/Where/Limit.
type SourceConfig struct {
	Type    string   `yaml:"type" mapstructure:"type"`
	Path    string   `yaml:"path" mapstructure:"path"`
	DSN     string   `yaml:"dsn" mapstructure:"dsn"`
	Query   string   `yaml:"query" mapstructure:"query"`
	Table   string   `yaml:"table" mapstructure:"table"`
	Columns []string `yaml:"columns" mapstructure:"columns"`
	Where   string   `yaml:"where" mapstructure:"where"`
	Limit   int      `yaml:"limit" mapstructure:"limit"`
}

// StepConfig is one pipeline step: an operation name from the frame
// surface plus its positional arguments.
type StepConfig struct {
	Op   string        `yaml:"op" mapstructure:"op"`
	Args []interface{} `yaml:"args" mapstructure:"args"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Trace: TraceConfig{
			FullSignature: true,
			CopyOK:        true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// ApplyOverrides applies CLI flag overrides to the configuration. Only
// set values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat string, verbose, silent, noCopy, memory bool) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if verbose {
		c.Trace.Verbose = true
	}
	if silent {
		c.Trace.Silent = true
	}
	if noCopy {
		c.Trace.CopyOK = false
	}
	if memory {
		c.Trace.CalculateMemory = true
	}
}
