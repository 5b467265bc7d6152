// Package pipeline executes configured pipelines: it loads a source
// frame, applies each step through the instrumented operation surface,
// and collects the per-step trace.
package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// MySQL driver registration for the mysql pipeline source.
	_ "github.com/go-sql-driver/mysql"

	"github.com/dbsmedya/framelog/internal/config"
	"github.com/dbsmedya/framelog/internal/frame"
	"github.com/dbsmedya/framelog/internal/logger"
	"github.com/dbsmedya/framelog/internal/sqlutil"
	"github.com/dbsmedya/framelog/internal/trace"
)

// Runner executes pipelines from configuration under an activation
// scope.
type Runner struct {
	cfg  *config.Config
	log  *logger.Logger
	ctrl *trace.Controller
}

// NewRunner creates a Runner. A nil controller uses the process-wide
// default.
func NewRunner(cfg *config.Config, log *logger.Logger, ctrl *trace.Controller) *Runner {
	if ctrl == nil {
		ctrl = trace.Default()
	}
	return &Runner{cfg: cfg, log: log, ctrl: ctrl}
}

// Result is the outcome of one pipeline run.
type Result struct {
	Frame    *frame.Frame
	Steps    []trace.StepStats
	Duration time.Duration
}

// Run executes the named pipeline. Instrumentation is enabled for the
// duration of the run and guaranteed to be disabled afterwards; the
// collected step records are returned alongside the final frame.
func (r *Runner) Run(ctx context.Context, name string) (*Result, error) {
	p, err := r.cfg.GetPipeline(name)
	if err != nil {
		return nil, err
	}
	log := r.log.WithPipeline(name)

	current, err := r.loadSource(ctx, &p.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to load source for pipeline %q: %w", name, err)
	}
	log.Infof("Loaded source: %d rows, %d columns", current.Len(), len(current.ColumnNames()))

	startTime := time.Now()
	runErr := r.ctrl.WithEnabled(TraceOptions(r.cfg), func() error {
		for i, step := range p.Steps {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("pipeline interrupted before step %d: %w", i+1, err)
			}
			stepLog := log.WithStep(i + 1)
			stepLog.Debugf("Applying %s", step.Op)
			out, err := frame.Apply(current, step.Op, step.Args...)
			if err != nil {
				return fmt.Errorf("step %d (%s) failed: %w", i+1, step.Op, err)
			}
			next, ok := out.(*frame.Frame)
			if !ok {
				return fmt.Errorf("step %d (%s) produced a %s, expected a frame", i+1, step.Op, out.Kind())
			}
			current = next
		}
		return nil
	})
	elapsed := time.Since(startTime)

	// The trace log survives Disable, so a failed run still reports the
	// steps that completed.
	steps := r.ctrl.Records()
	if runErr != nil {
		return &Result{Frame: current, Steps: steps, Duration: elapsed}, runErr
	}

	log.Infof("Pipeline complete: %d steps, %d rows remaining, duration: %s",
		len(p.Steps), current.Len(), elapsed)
	return &Result{Frame: current, Steps: steps, Duration: elapsed}, nil
}

// TraceOptions maps the configuration's trace section onto activation
// options.
func TraceOptions(cfg *config.Config) trace.Options {
	opts := trace.Options{
		Verbose:         cfg.Trace.Verbose,
		Silent:          cfg.Trace.Silent,
		FullSignature:   cfg.Trace.FullSignature,
		CopyOK:          cfg.Trace.CopyOK,
		CalculateMemory: cfg.Trace.CalculateMemory,
		Extras:          cfg.Trace.Extras,
	}
	if len(cfg.Operations.Frame) > 0 {
		opts.FrameOps = cfg.Operations.Frame
	}
	if len(cfg.Operations.Series) > 0 {
		opts.SeriesOps = cfg.Operations.Series
	}
	return opts
}

// loadSource builds the initial frame from the configured source.
func (r *Runner) loadSource(ctx context.Context, src *config.SourceConfig) (*frame.Frame, error) {
	switch src.Type {
	case "csv":
		return frame.LoadCSV(src.Path)
	case "mysql":
		db, err := sql.Open("mysql", src.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open mysql source: %w", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("mysql source unreachable: %w", err)
		}
		return LoadSQLSource(ctx, db, src)
	default:
		return nil, fmt.Errorf("unsupported source type %q", src.Type)
	}
}

// LoadSQLSource loads the source frame from an open database handle.
// Split from loadSource so tests can substitute a mock connection.
func LoadSQLSource(ctx context.Context, db *sql.DB, src *config.SourceConfig) (*frame.Frame, error) {
	query := src.Query
	if query == "" {
		built, err := BuildSourceQuery(src)
		if err != nil {
			return nil, err
		}
		query = built
	}
	return frame.FromSQL(ctx, db, query)
}

// BuildSourceQuery assembles a SELECT from Table/Columns/Where/Limit.
// Identifiers are validated and quoted; the WHERE clause is passed
// through as configured.
func BuildSourceQuery(src *config.SourceConfig) (string, error) {
	table, err := sqlutil.QuoteIdentifierSafe(src.Table)
	if err != nil {
		return "", fmt.Errorf("invalid source table: %w", err)
	}
	columns := "*"
	if len(src.Columns) > 0 {
		quoted := make([]string, len(src.Columns))
		for i, col := range src.Columns {
			q, err := sqlutil.QuoteIdentifierSafe(col)
			if err != nil {
				return "", fmt.Errorf("invalid source column: %w", err)
			}
			quoted[i] = q
		}
		columns = strings.Join(quoted, ", ")
	}
	query := fmt.Sprintf("SELECT %s FROM %s", columns, table)
	if src.Where != "" {
		query += fmt.Sprintf(" WHERE (%s)", src.Where)
	}
	if src.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", src.Limit)
	}
	return query, nil
}
