package trace

import (
	"time"

	"github.com/dbsmedya/framelog/internal/frame"
)

// wrap builds the WrapFunc used for one activation. The options and
// reporter are captured by the closures, so a suspended-then-resumed
// wrapper keeps the configuration it was enabled with.
func (c *Controller) wrap(opts Options, rep Reporter) WrapFunc {
	return func(desc OperationDescriptor) frame.Op {
		return func(in frame.Container, args []interface{}) (frame.Container, error) {
			rec := c.capture(in, opts, rep)

			var exec ExecutionStats
			if opts.CalculateMemory {
				b := rec.view.ApproxBytes()
				exec.MemBefore = &b
			}

			start := time.Now()
			out, err := desc.Original(in, args)
			exec.Elapsed = time.Since(start)
			if err != nil {
				// The capture record dies with this call; the caller sees
				// the operation's own error, unchanged, and no stats are
				// persisted for the failed call.
				exec.Err = err
				return nil, err
			}

			// A nil result signals a strictly in-place mutation; the live
			// container is the after view.
			after := out
			if after == nil {
				after = in
			}

			if opts.CalculateMemory {
				a := after.ApproxBytes()
				exec.MemAfter = &a
			}

			st := computeStep(desc, formatSignature(desc.Name, args, opts.FullSignature),
				rec, after, exec)
			c.persist(st)
			if !opts.Silent {
				rep.Report(st)
			}
			return out, nil
		}
	}
}

// capture produces the before snapshot. High fidelity deep-copies via the
// stored original copy implementation when one is installed; if the
// original cannot be resolved it falls back to the container's own
// DeepCopy. Low fidelity keeps a reference.
func (c *Controller) capture(in frame.Container, opts Options, rep Reporter) CaptureRecord {
	if !opts.CopyOK {
		return CaptureRecord{view: in, policy: LowFidelity}
	}

	start := time.Now()
	var view frame.Container
	usedOriginal := false
	if original, ok := c.reg.OriginalOf(in.Kind(), "copy"); ok {
		if copied, err := original(in, nil); err == nil && copied != nil {
			view = copied
			usedOriginal = true
		}
	}
	if view == nil {
		view = in.DeepCopy()
	}
	elapsed := time.Since(start)

	if opts.Verbose && !opts.Silent {
		rep.Report(StepStats{
			Op:           "copy",
			Kind:         in.Kind(),
			Signature:    "copy()",
			Internal:     true,
			RowsBefore:   in.Len(),
			RowsAfter:    view.Len(),
			DtypeChanges: map[string]DtypeChange{},
			Elapsed:      elapsed,
		})
	}
	return CaptureRecord{view: view, policy: HighFidelity, usedOriginalCopy: usedOriginal}
}
