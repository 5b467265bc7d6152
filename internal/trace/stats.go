package trace

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dbsmedya/framelog/internal/frame"
)

// Policy is the capture fidelity/cost trade-off.
type Policy int

const (
	// LowFidelity captures a reference to the live container. Cheap, but
	// an in-place mutation aliases the before and after views and diffs
	// to no change.
	LowFidelity Policy = iota
	// HighFidelity captures an independent deep copy, so in-place
	// mutations diff correctly.
	HighFidelity
)

func (p Policy) String() string {
	if p == HighFidelity {
		return "high-fidelity"
	}
	return "low-fidelity"
}

// CaptureRecord is the pre-operation snapshot. It is owned by the call
// that created it and discarded after diffing.
type CaptureRecord struct {
	view             frame.Container
	policy           Policy
	usedOriginalCopy bool
}

// Policy reports the capture policy in effect for the record.
func (c CaptureRecord) Policy() Policy { return c.policy }

// ExecutionStats measures one execution of an original implementation:
// elapsed wall time, optional byte sizes around the call, and the
// operation's own error if it failed. Produced once per intercepted
// call.
type ExecutionStats struct {
	Elapsed   time.Duration
	MemBefore *int64
	MemAfter  *int64
	Err       error
}

// DtypeChange records a column whose dtype differs across the call.
type DtypeChange struct {
	From frame.Dtype
	To   frame.Dtype
}

// StepStats is the diff record for one intercepted call: structural
// delta, timing, and optional memory delta. Immutable once built; each
// intercepted call produces exactly one.
type StepStats struct {
	Op        string
	Kind      frame.Kind
	Signature string

	// Internal marks a record for an internally triggered operation
	// (the capture copy under Verbose). Internal records are reported
	// but not persisted to the trace log.
	Internal bool

	RowsBefore int
	RowsAfter  int
	RowDelta   int

	ColumnsAdded   []string
	ColumnsRemoved []string
	DtypeChanges   map[string]DtypeChange

	// FilterRatio is rows-after / rows-before, present only when rows
	// decreased. Degenerate marks the empty-input case where the ratio
	// is reported as 0 instead of dividing by zero.
	FilterRatio *float64
	Degenerate  bool

	// MemoryDelta is present only when memory measurement was opted in;
	// nil distinguishes "not measured" from "no change".
	MemoryDelta *int64

	// Elapsed spans only the original implementation's execution,
	// excluding capture and diff overhead.
	Elapsed time.Duration
}

// computeStep diffs a capture record against the after-container.
func computeStep(desc OperationDescriptor, signature string, rec CaptureRecord,
	after frame.Container, exec ExecutionStats) StepStats {

	before := rec.view
	st := StepStats{
		Op:           desc.Name,
		Kind:         desc.Kind,
		Signature:    signature,
		RowsBefore:   before.Len(),
		RowsAfter:    after.Len(),
		DtypeChanges: make(map[string]DtypeChange),
		Elapsed:      exec.Elapsed,
	}
	st.RowDelta = st.RowsAfter - st.RowsBefore

	beforeTypes := before.Dtypes()
	afterTypes := after.Dtypes()
	for name := range afterTypes {
		if _, ok := beforeTypes[name]; !ok {
			st.ColumnsAdded = append(st.ColumnsAdded, name)
		}
	}
	for name, fromType := range beforeTypes {
		toType, ok := afterTypes[name]
		if !ok {
			st.ColumnsRemoved = append(st.ColumnsRemoved, name)
			continue
		}
		if fromType != toType {
			st.DtypeChanges[name] = DtypeChange{From: fromType, To: toType}
		}
	}
	sort.Strings(st.ColumnsAdded)
	sort.Strings(st.ColumnsRemoved)

	switch {
	case st.RowsBefore == 0 && st.RowsAfter == 0:
		// A filter on an empty container cannot shrink it further; report
		// a zero ratio instead of dividing by zero.
		zero := 0.0
		st.FilterRatio = &zero
		st.Degenerate = true
	case st.RowDelta < 0:
		ratio := float64(st.RowsAfter) / float64(st.RowsBefore)
		st.FilterRatio = &ratio
	}

	if exec.MemBefore != nil && exec.MemAfter != nil {
		delta := *exec.MemAfter - *exec.MemBefore
		st.MemoryDelta = &delta
	}
	return st
}

// formatSignature renders the operation for the record: just the name, or
// name(arg, arg) when full signatures are requested.
func formatSignature(name string, args []interface{}, full bool) string {
	if !full {
		return name
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
}
