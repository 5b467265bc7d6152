package report

import (
	"github.com/dbsmedya/framelog/internal/logger"
	"github.com/dbsmedya/framelog/internal/trace"
)

// Zap emits each record as a structured log entry, suitable for the json
// logging format.
type Zap struct {
	log *logger.Logger
}

// NewZap builds a structured reporter over the given logger.
func NewZap(log *logger.Logger) *Zap {
	return &Zap{log: log}
}

// Report logs the record's fields.
func (z *Zap) Report(st trace.StepStats) {
	entry := z.log.WithOp(st.Signature)
	fields := []interface{}{
		"kind", st.Kind.String(),
		"rows_before", st.RowsBefore,
		"rows_after", st.RowsAfter,
		"row_delta", st.RowDelta,
		"elapsed", st.Elapsed,
	}
	if st.Internal {
		fields = append(fields, "internal", true)
	}
	if len(st.ColumnsAdded) > 0 {
		fields = append(fields, "columns_added", st.ColumnsAdded)
	}
	if len(st.ColumnsRemoved) > 0 {
		fields = append(fields, "columns_removed", st.ColumnsRemoved)
	}
	if len(st.DtypeChanges) > 0 {
		changes := make(map[string]string, len(st.DtypeChanges))
		for name, change := range st.DtypeChanges {
			changes[name] = change.From.String() + "->" + change.To.String()
		}
		fields = append(fields, "dtype_changes", changes)
	}
	if st.FilterRatio != nil {
		fields = append(fields, "filter_ratio", *st.FilterRatio, "degenerate", st.Degenerate)
	}
	if st.MemoryDelta != nil {
		fields = append(fields, "memory_delta_bytes", *st.MemoryDelta)
	}
	entry.Infow("step", fields...)
}
