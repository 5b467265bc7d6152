// Package report provides Reporter implementations that render trace
// records for humans (colored console lines) or machines (structured zap
// fields). The trace core only depends on the Reporter contract, so
// these can be swapped or disabled freely.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/framelog/internal/trace"
)

// signatureWidth is the column the row statistics align to.
const signatureWidth = 36

// Console renders one aligned, colored line per step.
type Console struct {
	mu   sync.Mutex
	out  io.Writer
	step int
}

// NewConsole builds a console reporter writing to w. A nil writer
// defaults to stdout.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{out: w}
}

// Report writes the rendered record. Internal records (the capture copy
// under verbose) are dimmed and do not advance the step counter.
func (c *Console) Report(st trace.StepStats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if st.Internal {
		fmt.Fprintf(c.out, "     %s\n",
			color.Gray.Sprintf("%s %s internal copy, %d rows, %s",
				runewidth.FillRight(st.Signature, signatureWidth), st.Kind, st.RowsAfter, st.Elapsed))
		return
	}

	c.step++
	var parts []string
	parts = append(parts, rowSummary(st))
	if len(st.ColumnsAdded) > 0 {
		parts = append(parts, color.Green.Sprintf("+cols [%s]", strings.Join(st.ColumnsAdded, ", ")))
	}
	if len(st.ColumnsRemoved) > 0 {
		parts = append(parts, color.Red.Sprintf("-cols [%s]", strings.Join(st.ColumnsRemoved, ", ")))
	}
	for name, change := range st.DtypeChanges {
		parts = append(parts, color.Yellow.Sprintf("%s: %s to %s", name, change.From, change.To))
	}
	if st.MemoryDelta != nil {
		parts = append(parts, fmt.Sprintf("mem %s", signedBytes(*st.MemoryDelta)))
	}
	parts = append(parts, color.Gray.Sprint(st.Elapsed.String()))

	fmt.Fprintf(c.out, "%3d) %s %s\n",
		c.step,
		color.Cyan.Sprint(runewidth.FillRight(st.Signature, signatureWidth)),
		strings.Join(parts, "  "))
}

func rowSummary(st trace.StepStats) string {
	switch {
	case st.Degenerate:
		return fmt.Sprintf("%d rows (empty input, ratio 0)", st.RowsAfter)
	case st.RowDelta < 0:
		kept := *st.FilterRatio * 100
		return color.Red.Sprintf("%d to %d rows (%d, kept %.1f%%)",
			st.RowsBefore, st.RowsAfter, st.RowDelta, kept)
	case st.RowDelta > 0:
		return color.Green.Sprintf("%d to %d rows (+%d)", st.RowsBefore, st.RowsAfter, st.RowDelta)
	default:
		return fmt.Sprintf("%d rows (no change)", st.RowsAfter)
	}
}

// signedBytes renders a byte delta with an explicit sign and a human
// unit.
func signedBytes(n int64) string {
	sign := "+"
	if n < 0 {
		sign = "-"
		n = -n
	}
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%s%.1f MiB", sign, float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%s%.1f KiB", sign, float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%s%d B", sign, n)
	}
}
