package config

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/framelog/internal/frame"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for valid operation names, source
// definitions, and logging settings.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, validateOps("operations.frame", frame.KindFrame, c.Operations.Frame)...)
	errors = append(errors, validateOps("operations.series", frame.KindSeries, c.Operations.Series)...)

	for name, p := range c.Pipelines {
		errors = append(errors, validatePipeline(name, &p)...)
	}

	switch c.Logging.Format {
	case "", "json", "text":
	default:
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("must be json or text, got %q", c.Logging.Format),
		})
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func validateOps(field string, kind frame.Kind, names []string) ValidationErrors {
	var errors ValidationErrors
	for _, name := range names {
		if !frame.KnownOp(kind, name) {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("unknown %s operation %q", kind, name),
			})
		}
	}
	return errors
}

func validatePipeline(name string, p *PipelineConfig) ValidationErrors {
	var errors ValidationErrors
	field := fmt.Sprintf("pipelines.%s", name)

	switch p.Source.Type {
	case "csv":
		if p.Source.Path == "" {
			errors = append(errors, ValidationError{
				Field:   field + ".source.path",
				Message: "csv source requires a path",
			})
		}
	case "mysql":
		if p.Source.DSN == "" {
			errors = append(errors, ValidationError{
				Field:   field + ".source.dsn",
				Message: "mysql source requires a dsn",
			})
		}
		if p.Source.Query == "" && p.Source.Table == "" {
			errors = append(errors, ValidationError{
				Field:   field + ".source",
				Message: "mysql source requires a query or a table",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   field + ".source.type",
			Message: fmt.Sprintf("must be csv or mysql, got %q", p.Source.Type),
		})
	}

	if len(p.Steps) == 0 {
		errors = append(errors, ValidationError{
			Field:   field + ".steps",
			Message: "at least one step must be defined",
		})
	}
	for i, step := range p.Steps {
		if !frame.KnownOp(frame.KindFrame, step.Op) {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("%s.steps[%d]", field, i),
				Message: fmt.Sprintf("unknown frame operation %q", step.Op),
			})
		}
	}
	return errors
}
