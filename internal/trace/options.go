// Package trace implements the interception core: it installs wrappers
// over the frame operation surface, captures before/after snapshots,
// diffs them into per-step statistics, and hands each record to a
// Reporter. Activation is idempotent and fully reversible, with a nested
// suspend/resume that sets wrapped implementations aside and restores
// them byte-for-byte.
package trace

import "github.com/dbsmedya/framelog/internal/frame"

// Core allow-lists. Which operations get instrumented is configuration,
// not core behavior; these are the shipped defaults.
var (
	// DefaultFrameOps are the frame operations instrumented by default.
	DefaultFrameOps = []string{
		"query", "head", "tail", "drop", "dropna", "fillna",
		"rename", "assign", "select", "sort_values",
	}

	// ExtraFrameOps are supplementary operations instrumented only when
	// Options.Extras is set.
	ExtraFrameOps = []string{"copy", "sample"}

	// DefaultSeriesOps are the series operations instrumented by default.
	DefaultSeriesOps = []string{"head", "tail", "dropna", "sort_values"}

	// ExtraSeriesOps are supplementary series operations gated on Extras.
	ExtraSeriesOps = []string{"unique", "copy"}
)

// Options controls one activation scope. All toggles are independent.
type Options struct {
	// Verbose also reports internally triggered operations, such as the
	// implicit copy taken for a high-fidelity capture.
	Verbose bool

	// Silent suppresses reporting. Statistics are still computed and
	// persisted to the trace log.
	Silent bool

	// FullSignature includes the call arguments in each record instead
	// of just the operation name.
	FullSignature bool

	// CopyOK selects the high-fidelity capture policy: the input
	// container is deep-copied before the call so in-place mutations
	// still diff correctly. When false the capture is a plain reference
	// and in-place operations report no structural delta; that precision
	// loss is the accepted price of skipping the copy.
	CopyOK bool

	// CalculateMemory measures container storage before and after each
	// call and records the delta. When unset the delta is absent, not
	// zero.
	CalculateMemory bool

	// Extras appends the supplementary operation sets to the default
	// allow-lists. Ignored for a kind whose allow-list is set explicitly.
	Extras bool

	// FrameOps and SeriesOps override the default allow-lists when
	// non-nil. An explicit list is used verbatim.
	FrameOps  []string
	SeriesOps []string
}

// DefaultOptions returns the default activation options: full signatures
// and high-fidelity capture on, everything else off.
func DefaultOptions() Options {
	return Options{FullSignature: true, CopyOK: true}
}

// allowlist resolves the effective operation allow-list per kind.
func (o Options) allowlist() map[frame.Kind][]string {
	frameOps := o.FrameOps
	if frameOps == nil {
		frameOps = append([]string{}, DefaultFrameOps...)
		if o.Extras {
			frameOps = append(frameOps, ExtraFrameOps...)
		}
	}
	seriesOps := o.SeriesOps
	if seriesOps == nil {
		seriesOps = append([]string{}, DefaultSeriesOps...)
		if o.Extras {
			seriesOps = append(seriesOps, ExtraSeriesOps...)
		}
	}
	return map[frame.Kind][]string{
		frame.KindFrame:  frameOps,
		frame.KindSeries: seriesOps,
	}
}
