package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"

	"github.com/dbsmedya/framelog/internal/frame"
	"github.com/dbsmedya/framelog/internal/trace"
)

func init() {
	// Plain output so assertions see the text, not escape codes.
	color.Disable()
}

func TestConsoleReportFilterLine(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	ratio := 0.4
	c.Report(trace.StepStats{
		Op:         "query",
		Kind:       frame.KindFrame,
		Signature:  "query(total > 10)",
		RowsBefore: 100,
		RowsAfter:  40,
		RowDelta:   -60,
		FilterRatio: &ratio,
		Elapsed:    2 * time.Millisecond,
	})

	out := buf.String()
	assert.Contains(t, out, "  1) ")
	assert.Contains(t, out, "query(total > 10)")
	assert.Contains(t, out, "100 to 40 rows (-60, kept 40.0%)")
	assert.Contains(t, out, "2ms")
}

func TestConsoleReportColumnAndDtypeChanges(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Report(trace.StepStats{
		Op:             "assign",
		Kind:           frame.KindFrame,
		Signature:      "assign(total, ...)",
		RowsBefore:     5,
		RowsAfter:      5,
		ColumnsAdded:   []string{"total"},
		ColumnsRemoved: []string{"tmp"},
		DtypeChanges: map[string]trace.DtypeChange{
			"price": {From: frame.DtypeInt, To: frame.DtypeFloat},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "5 rows (no change)")
	assert.Contains(t, out, "+cols [total]")
	assert.Contains(t, out, "-cols [tmp]")
	assert.Contains(t, out, "price: int to float")
}

func TestConsoleReportDegenerate(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	zero := 0.0
	c.Report(trace.StepStats{
		Op:          "query",
		Kind:        frame.KindFrame,
		Signature:   "query(v > 0)",
		FilterRatio: &zero,
		Degenerate:  true,
	})
	assert.Contains(t, buf.String(), "0 rows (empty input, ratio 0)")
}

func TestConsoleInternalRecordDoesNotAdvanceStep(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Report(trace.StepStats{
		Op:        "copy",
		Kind:      frame.KindFrame,
		Signature: "copy()",
		Internal:  true,
		RowsAfter: 10,
	})
	assert.Contains(t, buf.String(), "internal copy, 10 rows")

	buf.Reset()
	c.Report(trace.StepStats{
		Op:        "head",
		Kind:      frame.KindFrame,
		Signature: "head(5)",
		RowsAfter: 5,
	})
	assert.Contains(t, buf.String(), "  1) ", "internal record did not consume a step number")
}

func TestConsoleStepNumbersIncrement(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	for i := 0; i < 3; i++ {
		c.Report(trace.StepStats{Op: "head", Signature: "head(1)", RowsAfter: 1})
	}
	out := buf.String()
	assert.Contains(t, out, "  1) ")
	assert.Contains(t, out, "  2) ")
	assert.Contains(t, out, "  3) ")
}

func TestConsoleMemoryDelta(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	delta := int64(-2048)
	c.Report(trace.StepStats{
		Op:          "drop",
		Signature:   "drop(name)",
		RowsBefore:  4,
		RowsAfter:   4,
		MemoryDelta: &delta,
	})
	assert.Contains(t, buf.String(), "mem -2.0 KiB")
}

func TestSignedBytes(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{0, "+0 B"},
		{512, "+512 B"},
		{-512, "-512 B"},
		{2048, "+2.0 KiB"},
		{-3 * 1 << 20, "-3.0 MiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, signedBytes(tt.n))
	}
}
